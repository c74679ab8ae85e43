package catalog

import (
	_ "go.uber.org/mock/gomock"
)

//go:generate mockgen -package mocks -destination mocks/store.go github.com/kasuboski/episodez/pkg/catalog Store
