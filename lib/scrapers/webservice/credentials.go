package webservice

import (
	"fmt"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Credentials identify a subscriber of the BCCR web service. Sign-up
// is free at the bank's suscripciones page; the token arrives by mail.
type Credentials struct {
	Name  string `json:"name" koanf:"BCCR_WS_NAME"`
	Email string `json:"email" koanf:"BCCR_WS_EMAIL"`
	Token string `json:"token" koanf:"BCCR_WS_TOKEN"`
}

func (c Credentials) Validate() error {
	if c.Email == "" || c.Token == "" {
		return fmt.Errorf("web service credentials need at least an email and a token")
	}
	return nil
}

// FromEnv overlays the BCCR_WS_NAME, BCCR_WS_EMAIL and BCCR_WS_TOKEN
// environment variables over c, so credentials never have to live in a
// checked-in config file.
func (c Credentials) FromEnv() (Credentials, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("BCCR_WS_", ".", nil), nil); err != nil {
		return c, fmt.Errorf("load credential env vars: %w", err)
	}

	overlay := c
	err := k.UnmarshalWithConf("", &overlay, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true})
	if err != nil {
		return c, fmt.Errorf("unmarshal credential env vars: %w", err)
	}
	return overlay, nil
}
