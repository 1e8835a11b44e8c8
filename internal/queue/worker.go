package queue

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/socialflow/internal/models"
)

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return q.PublishPost(ctx, payload.UserID, payload.PostID)
}

// PublishPost performs the simulated distribution of a scheduled post and
// flips its status. No real platform API is involved.
func (q *Queue) PublishPost(ctx context.Context, userID, postID string) error {
	post, err := q.pr.GetByID(ctx, userID, postID)
	if err != nil {
		return err
	}
	if post == nil {
		log.Printf("Post %s no longer exists, skipping", postID)
		return nil
	}
	if post.Status != models.PostStatusScheduled {
		return nil
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 10) // Concurrency limit

	for _, platform := range post.Platforms {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(platform string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			log.Printf("Distributing post %s to %s (simulated)", post.ID, platform)
		}(platform)
	}
	wg.Wait()

	if err := q.pr.UpdateStatus(ctx, userID, postID, models.PostStatusPosted); err != nil {
		log.Printf("Error updating status for post %s: %v", postID, err)
		return err
	}
	return nil
}
