package criticality

import (
	"context"
	"fmt"

	"asset-inventory/core/reconcile"
	"asset-inventory/feature/criticality/models"
)

// storeMutator applies reconcile actions to the record and asset stores.
type storeMutator struct {
	records RecordStore
	assets  AssetStore
}

var _ reconcile.Mutator = (*storeMutator)(nil)

func (m *storeMutator) Insert(ctx context.Context, action reconcile.Action) error {
	record, ok := action.Payload.(*models.CriticalityRecord)
	if !ok {
		return fmt.Errorf("insert %s: unexpected payload %T", action.Key, action.Payload)
	}
	// insert a copy, the plan payload stays untouched
	row := *record
	return m.records.InsertRecord(ctx, &row)
}

func (m *storeMutator) Update(ctx context.Context, action reconcile.Action) error {
	update, ok := action.Payload.(RecordUpdate)
	if !ok {
		return fmt.Errorf("update %s: unexpected payload %T", action.Key, action.Payload)
	}
	return m.records.UpdateRecord(ctx, update.RecordID, update.Fields)
}

func (m *storeMutator) Delete(ctx context.Context, action reconcile.Action) error {
	id, ok := action.Payload.(uint)
	if !ok {
		return fmt.Errorf("delete %s: unexpected payload %T", action.Key, action.Payload)
	}
	return m.records.DeleteRecord(ctx, id)
}

func (m *storeMutator) SetFlag(ctx context.Context, key string, value bool) error {
	assetID, err := parseAssetKey(key)
	if err != nil {
		return err
	}
	return m.assets.SetCriticalFlag(ctx, assetID, value)
}
