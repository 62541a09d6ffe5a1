package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"event-notifier/internal/model"
	"event-notifier/internal/repository"
)

// Sender delivers a rendered digest to its audience.
type Sender interface {
	Send(text string) error
}

// DigestService builds human-readable summaries of current and upcoming
// events for the daily notification.
type DigestService struct {
	eventRepo    *repository.EventRepository
	categoryRepo *repository.CategoryRepository
	sender       Sender
	windowDays   int
}

func NewDigestService(eventRepo *repository.EventRepository, categoryRepo *repository.CategoryRepository, sender Sender, windowDays int) *DigestService {
	return &DigestService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		sender:       sender,
		windowDays:   windowDays,
	}
}

// Summary renders an HTML digest for the calendar date of now: events
// already running, then events starting within the window.
func (s *DigestService) Summary(ctx context.Context, now time.Time) (string, error) {
	today := model.DateOf(now)

	events, err := s.eventRepo.ListEndingOnOrAfter(ctx, today)
	if err != nil {
		return "", err
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return "", err
	}
	catNames := make(map[uint]string, len(categories))
	for _, category := range categories {
		catNames[category.ID] = category.Name
	}

	horizon := today.AddDate(0, 0, s.windowDays)
	var ongoing []model.Event
	var upcoming []model.Event
	for _, event := range events {
		switch {
		case !event.StartDate.After(today):
			ongoing = append(ongoing, event)
		case !event.StartDate.After(horizon):
			upcoming = append(upcoming, event)
		}
	}

	var builder strings.Builder
	builder.WriteString("📅 <b>이벤트 알림</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", today.Format(model.DateLayout)))

	builder.WriteString("🔥 <b>진행 중인 이벤트</b>\n")
	if len(ongoing) == 0 {
		builder.WriteString("— 진행 중인 이벤트가 없습니다\n")
	} else {
		for _, event := range ongoing {
			builder.WriteString(formatEvent(event, catNames))
		}
	}

	builder.WriteString(fmt.Sprintf("\n⏳ <b>%d일 내 시작</b>\n", s.windowDays))
	if len(upcoming) == 0 {
		builder.WriteString("— 곧 시작하는 이벤트가 없습니다\n")
	} else {
		for _, event := range upcoming {
			builder.WriteString(formatEvent(event, catNames))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

// Deliver builds the digest for now and hands it to the sender.
func (s *DigestService) Deliver(ctx context.Context, now time.Time) error {
	text, err := s.Summary(ctx, now)
	if err != nil {
		return err
	}
	if err := s.sender.Send(text); err != nil {
		return fmt.Errorf("deliver digest: %w", err)
	}
	return nil
}

func formatEvent(event model.Event, catNames map[uint]string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("• %s", html.EscapeString(strings.TrimSpace(event.Title))))

	if name, ok := catNames[event.CategoryID]; ok {
		trimmed := strings.TrimSpace(name)
		if trimmed != "" {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(trimmed)))
		}
	}

	sb.WriteString(fmt.Sprintf("\n   📍 %s", html.EscapeString(strings.TrimSpace(event.Location))))
	sb.WriteString(fmt.Sprintf("\n   🗓 %s ~ %s",
		event.StartDate.Format(model.DateLayout), event.EndDate.Format(model.DateLayout)))

	sb.WriteByte('\n')
	return sb.String()
}
