package config

import (
	"path"

	"github.com/basenana/hanfts/config"
)

const (
	defaultIndexDir   = "index"
	defaultSqliteFile = "sqlite.db"
)

func localConfigFilePath(local string) string {
	return path.Join(local, config.DefaultConfigBase)
}

func localIndexDirPath(local string) string {
	return path.Join(local, defaultIndexDir)
}

func localDbFilePath(local string) string {
	return path.Join(local, defaultSqliteFile)
}
