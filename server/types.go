package server

import "github.com/kasuboski/episodez/pkg/rules"

type IdentifyResponse struct {
	Path     string      `json:"path"`
	Season   int         `json:"season"`
	Episode  int         `json:"episode"`
	Matched  bool        `json:"matched"`
	Rule     *rules.Rule `json:"rule,omitempty"`
	Readable string      `json:"readable"`
}
