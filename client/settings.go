package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/soulblade33/filerobot-uploader/types"
)

type settingsEnvelope struct {
	Settings struct {
		// integer sentinel on the wire, 1 means enabled
		ProductsEnabled int `json:"_products_enabled"`
	} `json:"settings"`
}

// GetTokenSettings fetches the account settings for the configured token.
func GetTokenSettings(cfg types.UploaderConfig) (*types.TokenSettings, error) {
	urlStr := apiBase(cfg) + "settings"

	body, err := Send(context.Background(), urlStr, http.MethodGet, nil, 0, authHeaders(cfg), nil)
	if err != nil {
		return nil, err
	}
	var env settingsEnvelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse settings response: %v", err)
	}
	return &types.TokenSettings{ProductsEnabled: env.Settings.ProductsEnabled == 1}, nil
}
