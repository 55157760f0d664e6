package configloader

import "github.com/yaklabco/exarch/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when it is non-zero
//   - Pointers: override wins when it is non-nil
//   - Slices: override replaces base entirely when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Host != "" {
		result.Host = override.Host
	}
	if override.Port != 0 {
		result.Port = override.Port
	}
	if override.Root != "" {
		result.Root = override.Root
	}
	if override.TLS.Cert != "" {
		result.TLS.Cert = override.TLS.Cert
	}
	if override.TLS.Key != "" {
		result.TLS.Key = override.TLS.Key
	}
	if override.Timeout != 0 {
		result.Timeout = override.Timeout
	}
	if override.MaxConnections != 0 {
		result.MaxConnections = override.MaxConnections
	}
	if override.FailureStatus != nil {
		result.FailureStatus = config.BoolPtr(*override.FailureStatus)
	}
	if override.IndexFiles != nil {
		result.IndexFiles = append([]string(nil), override.IndexFiles...)
	}
	if override.MetricsAddr != "" {
		result.MetricsAddr = override.MetricsAddr
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	if override.Build.Output != "" {
		result.Build.Output = override.Build.Output
	}
	if override.Build.Jobs != 0 {
		result.Build.Jobs = override.Build.Jobs
	}
	if override.Build.Ignore != nil {
		result.Build.Ignore = append([]string(nil), override.Build.Ignore...)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
