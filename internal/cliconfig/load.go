package cliconfig

// Resolve layers the config file and the environment over base, which
// holds defaults and parsed flags, then validates the result. A missing
// file at path is not an error.
func Resolve(base Config, path string, changed map[string]bool) (Config, error) {
	cfg := base

	if path != "" && FileExists(path) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return cfg, err
		}
		if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
