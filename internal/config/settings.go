package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings that differ between deployments. Defaults come from the constant block
// and are overridden by the environment (or a .env file) in LoadEnvironment.
var (
	IsProd         = false
	ListenAddr     = ServerListenAddr
	AuthToken      = ""
	NoAuthBypass   = false
	RedisAddress   = RedisAddr
	RedisPassword  = ""
	FaqDataPath    = DefaultFaqDataPath
	PlatformName   = DefaultPlatformName
	SupportContact = DefaultSupportContact
	LogFilePath    = ""

	LLMProvider   = DefaultLLMProvider
	LLMModel      = ""
	OllamaBaseURL = DefaultOllamaBaseURL
	GeminiAPIKey  = ""
	OpenAIBaseURL = ""
	OpenAIAPIKey  = ""
)

func LoadEnvironment(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	IsProd = strings.EqualFold(getEnv("APP_ENV", "development"), "production")
	ListenAddr = getEnv("LISTEN_ADDR", ListenAddr)
	AuthToken = getEnv("AUTH_TOKEN", AuthToken)
	NoAuthBypass = getEnvAsBool("NO_AUTH_BYPASS", NoAuthBypass)
	RedisAddress = getEnv("REDIS_ADDR", RedisAddress)
	RedisPassword = getEnv("REDIS_PASSWORD", RedisPassword)
	FaqDataPath = getEnv("FAQ_DATA_PATH", FaqDataPath)
	PlatformName = getEnv("PLATFORM_NAME", PlatformName)
	SupportContact = getEnv("SUPPORT_CONTACT", SupportContact)
	LogFilePath = getEnv("LOG_FILE_PATH", LogFilePath)

	LLMProvider = strings.ToLower(getEnv("LLM_PROVIDER", LLMProvider))
	LLMModel = getEnv("LLM_MODEL", LLMModel)
	OllamaBaseURL = strings.TrimRight(getEnv("OLLAMA_BASE_URL", OllamaBaseURL), "/")
	GeminiAPIKey = getEnv("GEMINI_API_KEY", GeminiAPIKey)
	OpenAIBaseURL = getEnv("OPENAI_BASE_URL", OpenAIBaseURL)
	OpenAIAPIKey = getEnv("OPENAI_API_KEY", OpenAIAPIKey)
}

// ModelFor returns the configured model, or the provider's default when LLM_MODEL is unset.
func ModelFor(provider string) string {
	if LLMModel != "" {
		return LLMModel
	}
	switch provider {
	case "gemini":
		return GeminiModelName
	case "openai":
		return DefaultOpenAIModel
	default:
		return DefaultOllamaModel
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
