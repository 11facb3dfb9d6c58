package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookhive/bookhive-server/internal/config"
	"github.com/bookhive/bookhive-server/internal/logger"
	"github.com/bookhive/bookhive-server/internal/metadata/kakao"
	"github.com/bookhive/bookhive-server/internal/metadata/seoji"
)

// ProvideSeojiClient provides the bibliographic feed client.
func ProvideSeojiClient(i do.Injector) (*seoji.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := seoji.New(seoji.Config{
		BaseURL:    cfg.Seoji.BaseURL,
		CertKey:    cfg.Seoji.CertKey,
		Timeout:    cfg.Seoji.Timeout,
		MaxRetries: cfg.Seoji.MaxRetries,
	}, log.Logger)

	if cfg.Seoji.CertKey == "" {
		log.Warn("No feed certification key configured, feed ingestion will fail until one is set")
	}

	return client, nil
}

// ProvideKakaoClient provides the book search client.
func ProvideKakaoClient(i do.Injector) (*kakao.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := kakao.New(kakao.Config{
		BaseURL: cfg.Kakao.BaseURL,
		RESTKey: cfg.Kakao.RESTKey,
		Timeout: cfg.Kakao.Timeout,
	}, log.Logger)

	if cfg.Kakao.RESTKey == "" {
		log.Warn("No book search REST key configured, enrichment and keyword replay will fail until one is set")
	}

	return client, nil
}
