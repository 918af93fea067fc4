package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

// InitEnvironmentVariables loads the .env file for goEnv from dir. Variables
// already present in the environment are not overwritten, and a missing file
// is not an error.
func InitEnvironmentVariables(dir string, goEnv string) error {
	// Production deployments inject variables directly
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	envFile := filepath.Join(dir, DEV_ENV_FILENAME)
	if goEnv == "production" {
		envFile = filepath.Join(dir, PROD_ENV_FILENAME)
	}

	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("InitEnvironmentVariables: %s not found, using process environment", envFile)
			return nil
		}

		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	log.Debugf("InitEnvironmentVariables: loaded %s", envFile)

	return nil
}
