package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/adamweingram/slurmtail/internal/utils"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (SLURMTAIL_*)
// 3. User config file (~/.config/slurmtail/config.yaml)
// 4. System config file (/etc/slurmtail/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	// Set config search paths (order matters)
	// User config (highest priority)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfigDir, "slurmtail"))
	}

	// Home directory fallback
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".slurmtail"))
	}

	// System-wide config (lower priority)
	viper.AddConfigPath("/etc/slurmtail")

	// Current directory (for development)
	viper.AddConfigPath(".")

	// Environment variables
	viper.SetEnvPrefix("SLURMTAIL")
	viper.AutomaticEnv()

	// Set defaults (lowest priority)
	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; will use defaults and auto-detect
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("scheduler_bin", "")
	viper.SetDefault("scheduler_type", "")

	viper.SetDefault("tail_lines", 150)
	viper.SetDefault("poll_interval", "1s")
	viper.SetDefault("file_timeout", "2m")
	viper.SetDefault("idle_timeout", "2m")
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".slurmtail", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "slurmtail", ConfigFilename+"."+ConfigType), nil
}

// SaveConfig saves current Viper config to user config file
func SaveConfig() error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Create directory if it doesn't exist
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ValidateBinary checks if a binary exists and is executable
func ValidateBinary(binPath string) bool {
	if binPath == "" {
		return false
	}

	// If it's a full path, check directly
	if filepath.IsAbs(binPath) {
		info, err := os.Stat(binPath)
		if err != nil {
			return false
		}
		// Check if it's executable (unix-style check)
		return info.Mode()&0111 != 0
	}

	// Otherwise, try to find it in PATH
	_, err := exec.LookPath(binPath)
	return err == nil
}

// DetectSchedulerBin attempts to find a scheduler submit binary in PATH.
// Returns (binary_path, scheduler_type) if found.
func DetectSchedulerBin() (string, string) {
	// Try SLURM first (most common in HPC)
	if path, err := exec.LookPath("sbatch"); err == nil {
		return path, "SLURM"
	}

	// Try PBS/Torque
	if path, err := exec.LookPath("qsub"); err == nil {
		return path, "PBS"
	}

	// Try LSF
	if path, err := exec.LookPath("bsub"); err == nil {
		return path, "LSF"
	}

	return "", ""
}

// AutoDetectAndSave auto-detects the scheduler binary and saves to config if needed
// Returns true if config was updated
func AutoDetectAndSave() (bool, error) {
	updated := false

	schedulerBin := viper.GetString("scheduler_bin")
	if !ValidateBinary(schedulerBin) {
		detectedBin, detectedType := DetectSchedulerBin()
		if detectedBin != "" {
			viper.Set("scheduler_bin", detectedBin)
			viper.Set("scheduler_type", detectedType)
			updated = true
		}
	}

	// Save if anything was updated
	if updated {
		if err := SaveConfig(); err != nil {
			return false, err
		}
	}

	return updated, nil
}

// LoadFromViper loads config from Viper into Global struct
func LoadFromViper() {
	if bin := viper.GetString("scheduler_bin"); bin != "" && ValidateBinary(bin) {
		Global.SchedulerBin = bin
	}
	if schedType := viper.GetString("scheduler_type"); schedType != "" {
		Global.SchedulerType = schedType
	}

	if lines := viper.GetInt("tail_lines"); lines > 0 {
		Global.TailLines = lines
	}

	if interval := viper.GetString("poll_interval"); interval != "" {
		if dur, err := utils.ParseDuration(interval); err == nil && dur > 0 {
			Global.PollInterval = dur
		}
	}

	if timeout := viper.GetString("file_timeout"); timeout != "" {
		if dur, err := utils.ParseDuration(timeout); err == nil {
			Global.FileTimeout = dur
		}
	}

	if timeout := viper.GetString("idle_timeout"); timeout != "" {
		if dur, err := utils.ParseDuration(timeout); err == nil {
			Global.IdleTimeout = dur
		}
	}
}
