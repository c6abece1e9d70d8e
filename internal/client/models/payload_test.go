package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload_SelectsVariantByCollection(t *testing.T) {
	name := "Armazon"
	raw, err := EncodePayload(InventoryPayload{OwnerID: "owner-1", Name: &name})
	require.NoError(t, err)

	p, err := DecodePayload(CollectionInventory, raw)
	require.NoError(t, err)

	inv, ok := p.(InventoryPayload)
	require.True(t, ok)
	assert.Equal(t, CollectionInventory, p.Kind())
	assert.Equal(t, "owner-1", inv.OwnerID)
	assert.Equal(t, "Armazon", *inv.Name)
}

func TestDecodePayload_UnknownCollection(t *testing.T) {
	_, err := DecodePayload("clientes", json.RawMessage(`{}`))
	require.Error(t, err)
}

func TestCollections_OrderIsStable(t *testing.T) {
	assert.Equal(t, []Collection{
		CollectionInventory,
		CollectionPatients,
		CollectionDiagnoses,
		CollectionPrescriptions,
	}, Collections())
}

func TestCollectionAndOperationValidity(t *testing.T) {
	for _, c := range Collections() {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Collection("clientes").Valid())

	for _, op := range []Operation{OpInsert, OpUpdate, OpDelete} {
		assert.True(t, op.Valid(), op)
	}
	assert.False(t, Operation("upsert").Valid())
}

func TestMergedWith_OverlaysOnlySetFields(t *testing.T) {
	name := "Ana"
	phone := "555-0100"
	newPhone := "555-0200"

	base := PatientFields{Name: &name, Phone: &phone}
	merged := base.MergedWith(PatientFields{Phone: &newPhone})

	assert.Equal(t, "Ana", *merged.Name)
	assert.Equal(t, "555-0200", *merged.Phone)
	assert.Nil(t, merged.Age)
}
