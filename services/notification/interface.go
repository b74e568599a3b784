package notification

import (
	"context"
	"fmt"

	"equiptrack/models"
	"equiptrack/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	// NotifyRunReport pushes a sync run summary to the organization's admin
	// topic.
	NotifyRunReport(ctx context.Context, report *models.RunReport) error
	// NotifyDeviceEvent pushes a checkout or return event to the
	// organization's admin topic.
	NotifyDeviceEvent(ctx context.Context, orgID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation. Admin apps
// subscribe to their organization's topic client-side, so no token registry
// is kept here.
type DefaultNotificationService struct{}

func NewDefaultNotificationService() *DefaultNotificationService {
	return &DefaultNotificationService{}
}

// orgTopic is the FCM topic carrying one organization's admin notifications.
func orgTopic(orgID string) string {
	return "org-" + orgID + "-admin"
}

func (s *DefaultNotificationService) NotifyRunReport(ctx context.Context, report *models.RunReport) error {
	title := fmt.Sprintf("Sync %s: %s", report.Pipeline, report.Outcome)
	body := fmt.Sprintf("%d records processed", report.Processed)
	if len(report.Notes) > 0 {
		body = fmt.Sprintf("%d records processed, %d issues (first: %s)",
			report.Processed, len(report.Notes), report.Notes[0].Reason)
	}

	return s.send(ctx, report.OrgID, title, body, map[string]string{
		"type":     "run_report",
		"pipeline": report.Pipeline,
		"outcome":  string(report.Outcome),
	})
}

func (s *DefaultNotificationService) NotifyDeviceEvent(ctx context.Context, orgID, title, body string, data map[string]string) error {
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["type"]; !ok {
		data["type"] = "device_event"
	}
	return s.send(ctx, orgID, title, body, data)
}

func (s *DefaultNotificationService) send(ctx context.Context, orgID, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		utils.GetLogger().Debug("FCM client not configured, dropping notification",
			zap.String("orgId", orgID), zap.String("title", title))
		return nil
	}

	msg := &messaging.Message{
		Topic: orgTopic(orgID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message for org %s: %w", orgID, err)
	}
	return nil
}
