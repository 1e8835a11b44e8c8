package queue

import (
	"github.com/maheshrc27/socialflow/internal/repository"
)

type Queue struct {
	pr repository.PostRepository
}

func NewQueue(pr repository.PostRepository) *Queue {
	return &Queue{pr: pr}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	UserID string `json:"user_id"`
	PostID string `json:"post_id"`
}
