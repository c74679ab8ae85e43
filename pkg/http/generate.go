package http

import (
	_ "go.uber.org/mock/gomock"
)

//go:generate mockgen -package mocks -destination mocks/http_client.go github.com/kasuboski/episodez/pkg/http HTTPClient
