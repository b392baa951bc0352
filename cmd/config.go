package main

import "time"

type Config struct {
	BadgerFilepath     string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	BlugeFilepath      string        `env:"BLUGE_FILEPATH,required=true" validate:"required"`
	ModelDir           string        `env:"MODEL_DIR,required=true" validate:"required"`
	CompanyRegistry    string        `env:"COMPANY_REGISTRY,default=data/known_companies.json" validate:"required"`
	ShadowModel        string        `env:"SHADOW_MODEL,default=model_b"`
	FallbackConfidence float64       `env:"FALLBACK_CONFIDENCE,default=0.85" validate:"gt=0,lte=1"`
	TranslatorEndpoint string        `env:"TRANSLATOR_ENDPOINT"`
	TranslatorAPIKey   string        `env:"TRANSLATOR_API_KEY"`
	TranslatorTimeout  time.Duration `env:"TRANSLATOR_TIMEOUT,default=10s"`
	LogLevel           string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
}
