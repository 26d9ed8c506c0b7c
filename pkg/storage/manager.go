package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/lodge/config"
	"github.com/shashiranjanraj/lodge/pkg/logger"
)

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultName = "local"
)

// Connect boots the local disk, the S3 disk when S3_BUCKET is set, and
// selects STORAGE_DISK as the default. It fails when the default disk
// cannot be built.
func Connect() error {
	local, err := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return err
	}
	Register("local", local)

	if config.StorageS3Bucket() != "" {
		d, err := NewS3Disk(context.Background(), S3Options{
			Bucket:    config.StorageS3Bucket(),
			Region:    config.StorageS3Region(),
			Key:       config.StorageS3Key(),
			Secret:    config.StorageS3Secret(),
			Endpoint:  config.StorageS3Endpoint(),
			PublicURL: config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			Register("s3", d)
		}
	}

	name := config.StorageDefault()
	if _, err := Use(name); err != nil {
		return err
	}
	mu.Lock()
	defaultName = name
	mu.Unlock()
	return nil
}

// Register makes d available under name.
func Register(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	mu.RLock()
	d, ok := disks[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk selected by STORAGE_DISK. It panics before
// Connect or Register("local", ...) has run.
func Default() Disk {
	mu.RLock()
	name := defaultName
	mu.RUnlock()
	d, err := Use(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Local returns the local disk when it is registered.
func Local() (*LocalDisk, bool) {
	d, err := Use("local")
	if err != nil {
		return nil, false
	}
	ld, ok := d.(*LocalDisk)
	return ld, ok
}
