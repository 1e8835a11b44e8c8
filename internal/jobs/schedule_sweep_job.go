package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/socialflow/internal/queue"
	"github.com/maheshrc27/socialflow/internal/repository"
)

// ScheduleSweepJob re-publishes scheduled posts whose time has already
// passed. Posts land here when their queue task was lost (Redis flush,
// restart mid-delay); the sweep keeps the store and the queue agreed.
type ScheduleSweepJob struct {
	ur repository.UserRepository
	pr repository.PostRepository
	q  *queue.Queue
}

func NewScheduleSweepJob(ur repository.UserRepository, pr repository.PostRepository, q *queue.Queue) *ScheduleSweepJob {
	return &ScheduleSweepJob{ur: ur, pr: pr, q: q}
}

func (j *ScheduleSweepJob) Sweep() {
	ctx := context.Background()

	users, err := j.ur.List(ctx)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	cutoff := time.Now().UTC()
	for _, user := range users {
		due, err := j.pr.ListScheduledBefore(ctx, user.ID, cutoff)
		if err != nil {
			slog.Error(err.Error())
			continue
		}
		for _, post := range due {
			if err := j.q.PublishPost(ctx, user.ID, post.ID); err != nil {
				slog.Error(err.Error(), "post_id", post.ID)
			}
		}
	}
}
