package sheets

import (
	"context"
	"errors"
	"testing"
)

func TestClientDisablesOnBadKey(t *testing.T) {
	client := NewClient(ClientConfig{
		SheetID:             "sheet-id",
		ServiceAccountEmail: "svc@example.iam.gserviceaccount.com",
		PrivateKey:          "definitely not a key",
	})
	ctx := context.Background()

	_, err := client.ReadRange(ctx, "Jobs!A1:L1")
	var unavailable *StorageUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected StorageUnavailableError, got %v", err)
	}
	if unavailable.Category != "credential" {
		t.Fatalf("expected credential category, got %q", unavailable.Category)
	}
	var kerr *KeyFormatError
	if !errors.As(err, &kerr) {
		t.Fatalf("error must carry the key format cause, got %v", err)
	}
	if client.state != stateDisabled {
		t.Fatalf("client must be disabled after a credential failure")
	}

	// Later calls fail fast from the memoized error; initialization never
	// runs again without a process restart.
	firstInitErr := client.initErr
	if err := client.UpdateRange(ctx, "Jobs!A1:L1", nil); err == nil {
		t.Fatalf("expected fail-fast on update")
	} else if !errors.As(err, &unavailable) || unavailable.Category != "credential" {
		t.Fatalf("expected credential failure on update, got %v", err)
	}
	if err := client.AppendRows(ctx, "Jobs!A1:L1", nil); err == nil {
		t.Fatalf("expected fail-fast on append")
	}
	if client.initErr != firstInitErr {
		t.Fatalf("disabled client must not reattempt initialization")
	}
}

func TestClientDisablesOnIncompleteCredentials(t *testing.T) {
	client := NewClient(ClientConfig{SheetID: "sheet-id"})

	_, err := client.ReadRange(context.Background(), "Jobs!A1:L1")
	var unavailable *StorageUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected StorageUnavailableError, got %v", err)
	}
	if unavailable.Category != "credential" {
		t.Fatalf("expected credential category, got %q", unavailable.Category)
	}
	if client.state != stateDisabled {
		t.Fatalf("client must be disabled with incomplete credentials")
	}
}
