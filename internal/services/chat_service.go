package services

import (
	"context"
	"errors"
	"strings"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/events"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
	"go.uber.org/zap"
)

type chatService struct {
	messages  repository.MessageRepository
	chatLists repository.ChatListRepository
	publisher events.Publisher
	logger    *zap.SugaredLogger
	now       Clock
}

func NewChatService(messages repository.MessageRepository, chatLists repository.ChatListRepository, publisher events.Publisher, logger *zap.SugaredLogger) ChatService {
	return &chatService{messages: messages, chatLists: chatLists, publisher: publisher, logger: logger, now: systemClock}
}

func (s *chatService) Append(ctx context.Context, req models.CreateMessageRequest) (*models.Message, error) {
	m := &models.Message{
		RequestID: req.RequestID.String(),
		Msg:       req.Msg,
		UserID:    req.UserID,
		UserName:  req.UserName,
		URL:       req.URL,
		CDt:       s.now(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, apperr.Internal("failed to save message", err)
	}

	// The message is stored; a stale summary is only logged.
	sender := models.ChatParticipant{ID: m.UserID, Name: m.UserName}
	if err := s.chatLists.Touch(ctx, m.RequestID, sender, m.Msg, m.CDt); err != nil {
		s.logger.Errorw("chat list update failed", "requestId", m.RequestID, "error", err)
	}

	if err := s.publisher.Publish(ctx, events.New(events.ChatMessageCreated, m.RequestID, m)); err != nil {
		s.logger.Warnw("event publish failed", "type", events.ChatMessageCreated, "error", err)
	}
	return m, nil
}

func (s *chatService) List(ctx context.Context, requestID string) ([]models.Message, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, apperr.Validation("requestId is required", nil)
	}
	out, err := s.messages.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch messages", err)
	}
	return out, nil
}

func (s *chatService) Update(ctx context.Context, id string, req models.UpdateMessageRequest) (*models.Message, error) {
	if req.Msg == nil && req.URL == nil {
		return nil, apperr.Validation("msg or url is required", nil)
	}
	m, err := s.messages.Update(ctx, id, repository.MessageUpdate{Msg: req.Msg, URL: req.URL, At: s.now()})
	if err != nil {
		return nil, storeErr(err, "Message not found")
	}
	sender := models.ChatParticipant{ID: m.UserID, Name: m.UserName}
	if err := s.chatLists.Touch(ctx, m.RequestID, sender, m.Msg, m.CDt); err != nil {
		s.logger.Errorw("chat list update failed", "requestId", m.RequestID, "error", err)
	}
	return m, nil
}

func (s *chatService) Delete(ctx context.Context, id string) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return storeErr(err, "Message not found")
	}
	return nil
}

func (s *chatService) CreateChatList(ctx context.Context, req models.CreateChatListRequest) (*models.ChatList, error) {
	c := &models.ChatList{
		RequestID: req.RequestID.String(),
		LatestMsg: req.LatestMsg,
		Users:     req.Users,
		CDt:       s.now(),
	}
	if req.LatestMsg != "" {
		c.LatestMsgTime = ptr(c.CDt)
	}
	if err := s.chatLists.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Chat list already exists for this request")
		}
		return nil, apperr.Internal("failed to create chat list", err)
	}
	return c, nil
}

func (s *chatService) ChatLists(ctx context.Context, userID string) ([]models.ChatList, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Validation("userId is required", nil)
	}
	out, err := s.chatLists.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch chat list", err)
	}
	return out, nil
}
