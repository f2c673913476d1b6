package constants

import "os"

const (
	DefaultPort           = 8080
	DefaultStoreBackend   = "memory"
	DefaultDynamoEndpoint = "http://localhost:8000"
	DefaultDynamoRegion   = "localhost"
	DefaultDynamoTable    = "capo-progressions"
)

const (
	EnvConfigPath     = "CAPO_CONFIG"
	EnvPort           = "CAPO_PORT"
	EnvStoreBackend   = "CAPO_STORE"
	EnvDynamoEndpoint = "CAPO_DYNAMO_ENDPOINT"
	EnvDynamoRegion   = "CAPO_DYNAMO_REGION"
	EnvDynamoTable    = "CAPO_DYNAMO_TABLE"
)

func GetConfigPath() string {
	path := os.Getenv(EnvConfigPath)
	if path != "" {
		return path
	}
	return "capo.yaml"
}
