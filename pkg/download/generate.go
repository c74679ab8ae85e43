package download

import (
	_ "go.uber.org/mock/gomock"
)

//go:generate mockgen -package mocks -destination mocks/http/http_client.go github.com/kasuboski/episodez/pkg/download HTTPClient
//go:generate mockgen -package mocks -destination mocks/client.go github.com/kasuboski/episodez/pkg/download Client
