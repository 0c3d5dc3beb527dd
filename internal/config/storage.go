package config

import (
	"os"
	"sync"
)

// StorageConfig points at the object storage used for resume files. When
// UploadURL is empty resumes are kept on local disk under LocalDir.
type StorageConfig struct {
	UploadURL        string
	APIKey           string
	Folder           string
	LocalDir         string
	MaxDownloadBytes int64
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			UploadURL:        os.Getenv("STORAGE_UPLOAD_URL"),
			APIKey:           os.Getenv("STORAGE_API_KEY"),
			Folder:           getEnv("STORAGE_FOLDER", "resumes"),
			LocalDir:         getEnv("STORAGE_LOCAL_DIR", "./uploads/resumes"),
			MaxDownloadBytes: int64(getEnvInt("STORAGE_MAX_DOWNLOAD_BYTES", 10<<20)),
		}
	})
	return storageConfig
}
