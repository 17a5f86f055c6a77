package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuanfantuan/voiceorder/internal/domain/session"
)

// JSONRepository 是 JSON 檔案版的會話儲存，一個會話一個檔
type JSONRepository struct {
	baseDir string
}

// NewJSONRepository 建立 JSON 檔案儲存；目錄不存在時建立
func NewJSONRepository(baseDir string) (*JSONRepository, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}
	return &JSONRepository{baseDir: baseDir}, nil
}

// Save 保存會話
func (r *JSONRepository) Save(ctx context.Context, sess *session.Session) error {
	data, err := json.MarshalIndent(sess.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(r.filePath(sess.ID()), data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load 載入會話
func (r *JSONRepository) Load(ctx context.Context, id string) (*session.Session, error) {
	data, err := os.ReadFile(r.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sn session.Snapshot
	if err := json.Unmarshal(data, &sn); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session.FromSnapshot(sn), nil
}

// Exists 判斷會話是否存在
func (r *JSONRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := os.Stat(r.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete 刪除會話；本來就不存在不算錯
func (r *JSONRepository) Delete(ctx context.Context, id string) error {
	if err := os.Remove(r.filePath(id)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

func (r *JSONRepository) filePath(id string) string {
	return filepath.Join(r.baseDir, id+".json")
}
