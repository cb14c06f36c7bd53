package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestDatabase_UserCRUD tests user database operations
func TestDatabase_UserCRUD(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("CreateUser", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO users (id, name, email, password, role, status, language, emergency_contacts, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, userID, "Test User", "test@example.com", "hashed_password", "user", "Active", "en",
			`["contact@example.com"]`, time.Now(), time.Now())

		if err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
	})

	t.Run("ReadUser", func(t *testing.T) {
		var name, email, language string
		err := env.DB.QueryRowContext(ctx, `
			SELECT name, email, language FROM users WHERE id = $1
		`, userID).Scan(&name, &email, &language)

		if err != nil {
			t.Fatalf("Failed to read user: %v", err)
		}
		if name != "Test User" {
			t.Errorf("Expected name 'Test User', got '%s'", name)
		}
		if language != "en" {
			t.Errorf("Expected language 'en', got '%s'", language)
		}
	})

	t.Run("UpdateLanguagePreference", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			UPDATE users SET language = $1, updated_at = $2 WHERE id = $3
		`, "id", time.Now(), userID)

		if err != nil {
			t.Fatalf("Failed to update user: %v", err)
		}

		var language string
		env.DB.QueryRowContext(ctx, `SELECT language FROM users WHERE id = $1`, userID).Scan(&language)
		if language != "id" {
			t.Errorf("Expected language 'id', got '%s'", language)
		}
	})

	t.Run("DeleteUser", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
		if err != nil {
			t.Fatalf("Failed to delete user: %v", err)
		}

		var count int
		env.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = $1`, userID).Scan(&count)
		if count != 0 {
			t.Error("User should have been deleted")
		}
	})
}

// TestDatabase_ConversationHistory tests turn logging and last-turn lookup
func TestDatabase_ConversationHistory(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	userID := uuid.New().String()

	_, err := env.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password) VALUES ($1, $2, $3, $4)
	`, userID, "Test User", "history@example.com", "x")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	turns := []struct {
		utterance string
		intent    string
		createdAt time.Time
	}{
		{"what do you see", "describe_scene", time.Now().Add(-2 * time.Minute)},
		{"read this", "read_text", time.Now().Add(-1 * time.Minute)},
		{"try again", "read_text", time.Now()},
	}
	for _, turn := range turns {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO conversation_history (id, user_id, utterance, assistant_response, intent, confidence, source, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.New().String(), userID, turn.utterance, "ok", turn.intent, 1.0, "local_keyword", turn.createdAt)
		if err != nil {
			t.Fatalf("Failed to insert turn: %v", err)
		}
	}

	t.Run("LatestTurnFirst", func(t *testing.T) {
		var utterance, intent string
		err := env.DB.QueryRowContext(ctx, `
			SELECT utterance, intent FROM conversation_history
			WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1
		`, userID).Scan(&utterance, &intent)

		if err != nil {
			t.Fatalf("Failed to read latest turn: %v", err)
		}
		if utterance != "try again" {
			t.Errorf("Expected latest utterance 'try again', got '%s'", utterance)
		}
		if intent != "read_text" {
			t.Errorf("Expected intent 'read_text', got '%s'", intent)
		}
	})

	t.Run("CountForUser", func(t *testing.T) {
		var count int
		env.DB.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM conversation_history WHERE user_id = $1
		`, userID).Scan(&count)
		if count != 3 {
			t.Errorf("Expected 3 turns, got %d", count)
		}
	})
}

// TestDatabase_SceneMemoryUpsert tests the image-hash dedupe constraint
func TestDatabase_SceneMemoryUpsert(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	userID := uuid.New().String()
	_, err := env.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password) VALUES ($1, $2, $3, $4)
	`, userID, "Test User", "scenes@example.com", "x")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	upsert := `
		INSERT INTO scene_memories (id, user_id, description, image_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (image_hash) DO UPDATE SET description = EXCLUDED.description
	`
	hash := "abc123def456"

	if _, err := env.DB.ExecContext(ctx, upsert, uuid.New().String(), userID, "a hallway", hash); err != nil {
		t.Fatalf("Failed first upsert: %v", err)
	}
	if _, err := env.DB.ExecContext(ctx, upsert, uuid.New().String(), userID, "a bright hallway", hash); err != nil {
		t.Fatalf("Failed second upsert: %v", err)
	}

	var count int
	var description string
	env.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM scene_memories WHERE image_hash = $1`, hash).Scan(&count)
	env.DB.QueryRowContext(ctx, `SELECT description FROM scene_memories WHERE image_hash = $1`, hash).Scan(&description)

	if count != 1 {
		t.Errorf("Expected one row per image hash, got %d", count)
	}
	if description != "a bright hallway" {
		t.Errorf("Expected updated description, got '%s'", description)
	}
}
