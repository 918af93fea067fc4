package httpclient

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type otpResponseDTO struct {
	OTP    string `json:"otp"`
	Limit  int    `json:"limit"`
	Online int    `json:"online"`
}

// GetOTP returns a one time password for opening a long-lived socket session.
func (c *Client) GetOTP(ctx context.Context) (string, error) {
	var resp otpResponseDTO
	if err := c.Do(ctx, http.MethodGet, "/v1/socket/token", nil, nil, &resp); err != nil {
		return "", fmt.Errorf("GetOTP: %w", err)
	}

	log.WithFields(log.Fields{
		"limit":  resp.Limit,
		"online": resp.Online,
	}).Info("create otp")

	if resp.Online >= resp.Limit {
		return "", fmt.Errorf("GetOTP: %w: limit %d, online %d", ErrConnectionLimitExceeded, resp.Limit, resp.Online)
	}

	return resp.OTP, nil
}
