package configfile

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/opensandbox/sandbox-go/internal/env"
)

type profileConfig struct {
	APIKey    string `toml:"api_key"`
	Endpoint  string `toml:"endpoint"`
	GitDomain string `toml:"git_domain"`
	Org       string `toml:"org"`
}

var (
	profileConfigs      map[string]*profileConfig
	profileConfigsError error
	profileConfigsOnce  sync.Once
)

// APIKeyFromConfigFile 从配置文件读取 API Key。
func APIKeyFromConfigFile() (string, error) {
	profile, err := getProfile()
	if err != nil || profile == nil {
		return "", err
	}
	return profile.APIKey, nil
}

// EndpointFromConfigFile 从配置文件读取服务地址。
func EndpointFromConfigFile() (string, error) {
	profile, err := getProfile()
	if err != nil || profile == nil {
		return "", err
	}
	return profile.Endpoint, nil
}

// GitDomainFromConfigFile 从配置文件读取 git 服务域名。
func GitDomainFromConfigFile() (string, error) {
	profile, err := getProfile()
	if err != nil || profile == nil {
		return "", err
	}
	return profile.GitDomain, nil
}

// OrgFromConfigFile 从配置文件读取组织 slug。
func OrgFromConfigFile() (string, error) {
	profile, err := getProfile()
	if err != nil || profile == nil {
		return "", err
	}
	return profile.Org, nil
}

func getProfile() (*profileConfig, error) {
	if err := load(); err != nil {
		return nil, err
	}
	profileName := env.ProfileFromEnvironment()
	if profileName == "" {
		profileName = "default"
	}
	return profileConfigs[profileName], nil
}

func load() error {
	profileConfigsOnce.Do(func() {
		configFilePath := env.ConfigFileFromEnvironment()
		if configFilePath == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				profileConfigsError = err
				return
			}
			configFilePath = filepath.Join(homeDir, ".opensandbox", "config")
		}
		if _, err := os.Stat(configFilePath); err != nil {
			// 配置文件不存在不算错误
			return
		}
		if _, err := toml.DecodeFile(configFilePath, &profileConfigs); err != nil {
			profileConfigsError = err
		}
	})
	return profileConfigsError
}
