package kintai

import (
	"context"

	"github.com/firebase/genkit/go/core/api"
)

const providerID = "kintai"

type KintaiPlugin struct {
}

func (p *KintaiPlugin) Name() string {
	return providerID
}

func (m *KintaiPlugin) Init(ctx context.Context) []api.Action {
	return []api.Action{}
}
