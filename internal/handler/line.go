package handler

import (
	"context"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// LineClient adapts the SDK client to the LineAPI interface.
type LineClient struct {
	client *linebot.Client
}

// NewLineClient wraps an SDK client
func NewLineClient(client *linebot.Client) *LineClient {
	return &LineClient{client: client}
}

// Reply answers an inbound event through its reply token.
func (c *LineClient) Reply(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error {
	_, err := c.client.ReplyMessage(replyToken, messages...).WithContext(ctx).Do()
	return err
}

// DisplayName resolves a group member's display name.
func (c *LineClient) DisplayName(ctx context.Context, groupID, userID string) (string, error) {
	profile, err := c.client.GetGroupMemberProfile(groupID, userID).WithContext(ctx).Do()
	if err != nil {
		return "", err
	}
	return profile.DisplayName, nil
}
