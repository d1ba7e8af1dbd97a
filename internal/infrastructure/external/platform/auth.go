package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

// RequestDevToken asks the platform for a development token of the given user type.
// The endpoint lives under the /api root, not /api/v1.
func (c *Client) RequestDevToken(ctx context.Context, userType string) (*entity.DevToken, error) {
	if !isDevTokenUserType(userType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUserType, userType)
	}

	body, err := c.do(ctx, http.MethodGet, c.urls.API, "/auth/token/"+userType, nil, nil)
	if err != nil {
		return nil, err
	}

	var token entity.DevToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &token, nil
}

func isDevTokenUserType(userType string) bool {
	for _, t := range entity.DevTokenUserTypes {
		if t == userType {
			return true
		}
	}
	return false
}
