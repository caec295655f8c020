package env

import (
	"os"
	"strings"
)

const (
	environmentVariableNameAPIKey     = "OPENSANDBOX_API_KEY"
	environmentVariableNameAPIURL     = "OPENSANDBOX_API_URL"
	environmentVariableNameGitDomain  = "OPENSANDBOX_GIT_DOMAIN"
	environmentVariableNameOrg        = "OPENSANDBOX_ORG"
	environmentVariableNameConfigFile = "OPENSANDBOX_CONFIG_FILE"
	environmentVariableNameProfile    = "OPENSANDBOX_PROFILE"
	environmentVariableNameDebug      = "OPENSANDBOX_DEBUG"
)

func APIKeyFromEnvironment() string {
	return os.Getenv(environmentVariableNameAPIKey)
}

func EndpointFromEnvironment() string {
	return strings.TrimSpace(os.Getenv(environmentVariableNameAPIURL))
}

func GitDomainFromEnvironment() string {
	return os.Getenv(environmentVariableNameGitDomain)
}

func OrgFromEnvironment() string {
	return os.Getenv(environmentVariableNameOrg)
}

func ConfigFileFromEnvironment() string {
	return os.Getenv(environmentVariableNameConfigFile)
}

func ProfileFromEnvironment() string {
	return os.Getenv(environmentVariableNameProfile)
}

func DebugFromEnvironment() bool {
	value := strings.ToLower(os.Getenv(environmentVariableNameDebug))
	return value == "true" || value == "yes" || value == "y" || value == "1"
}
