// Package cache keeps the last known practice snapshot of every user on the
// host, so the engine can work while the remote store is unreachable.
package cache

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/pkg/entity"
)

// LocalCacheI is synchronous. Every error wraps errorvalues.ErrCache.
type LocalCacheI interface {
	Save(uid uuid.UUID, snapshot *entity.UserPracticeSnapshot) error
	// Returns nil, nil when nothing is stored for uid
	Load(uid uuid.UUID) (*entity.UserPracticeSnapshot, error)
	Clear(uid uuid.UUID) error
}

func encode(snapshot *entity.UserPracticeSnapshot) ([]byte, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: snapshot is nil", errorvalues.ErrCache)
	}
	raw, err := sonic.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding snapshot: %s", errorvalues.ErrCache, err.Error())
	}
	return raw, nil
}

func decode(raw []byte) (*entity.UserPracticeSnapshot, error) {
	var snapshot entity.UserPracticeSnapshot
	if err := sonic.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: decoding snapshot: %s", errorvalues.ErrCache, err.Error())
	}
	return &snapshot, nil
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %s", errorvalues.ErrCache, op, err.Error())
}
