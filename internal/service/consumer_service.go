package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"job-proposal-be/internal/corpus"
	"job-proposal-be/internal/dto"
	"job-proposal-be/internal/pkg/logger"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService flushes in-memory corpus indexes to disk off the
// request path. HTTP handlers publish a persist message and return;
// this consumer does the file IO.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	projects  *corpus.ProjectStore
	reviews   *corpus.ReviewStore
	resumes   *corpus.ResumeStore
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	projects *corpus.ProjectStore,
	reviews *corpus.ReviewStore,
	resumes *corpus.ResumeStore,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		projects:  projects,
		reviews:   reviews,
		resumes:   resumes,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.PersistCorpusMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer_service", "invalid persist message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed, retrying would not help
		return
	}

	var err error
	switch payload.Corpus {
	case dto.CorpusProjects:
		err = cs.projects.Save()
	case dto.CorpusReviews:
		err = cs.reviews.Save()
	case dto.CorpusResumes:
		err = cs.resumes.Save()
	default:
		cs.log.Error("consumer_service", "unknown corpus in persist message", map[string]interface{}{
			"corpus": payload.Corpus,
		})
		msg.Ack()
		return
	}

	if err != nil {
		cs.log.Error("consumer_service", "corpus persist failed", map[string]interface{}{
			"corpus": payload.Corpus,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer_service", "corpus persisted", map[string]interface{}{
		"corpus": payload.Corpus,
	})
	msg.Ack()
}
