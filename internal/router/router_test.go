// ABOUTME: Tests for the active-service router
// ABOUTME: Covers prefix classification, persistence, restore and redirect rules

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Service
	}{
		{"/sms", ServiceSMS},
		{"/sms/compose", ServiceSMS},
		{"/smsx", ServiceNone},
		{"/dashboard", ServiceInventory},
		{"/stock/new", ServiceInventory},
		{"/expenses/track", ServiceInventory},
		{"/inventory", ServiceInventory},
		{"/payments", ServiceNone},
		{"/", ServiceNone},
		{"/login", ServiceNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestNavigate_AdoptsAndPersistsImpliedService(t *testing.T) {
	kv := store.NewMemory()
	r := New(kv)

	d := r.Navigate("/sms/history")
	assert.Equal(t, ServiceSMS, d.Service)
	assert.Empty(t, d.Redirect)

	v, ok, err := kv.Get(store.KeyActiveService)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sms", v)

	d = r.Navigate("/products")
	assert.Equal(t, ServiceInventory, d.Service)
	v, _, _ = kv.Get(store.KeyActiveService)
	assert.Equal(t, "inventory", v)
}

func TestNavigate_ProtectedRestoresPersisted(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(store.KeyActiveService, "inventory"))
	r := New(kv)

	d := r.Navigate("/payments")
	assert.Equal(t, ServiceInventory, d.Service)
	assert.Empty(t, d.Redirect)
	assert.Equal(t, ServiceInventory, r.Current())
}

func TestNavigate_ProtectedWithoutPersistedRedirects(t *testing.T) {
	r := New(store.NewMemory())

	d := r.Navigate("/settings/profile")
	assert.Equal(t, ServiceNone, d.Service)
	assert.Equal(t, SelectServicePath, d.Redirect)
}

func TestNavigate_UnprotectedPathKeepsCurrent(t *testing.T) {
	r := New(store.NewMemory())
	assert.Equal(t, Decision{}, r.Navigate("/blog"))

	r.Navigate("/sms")
	d := r.Navigate("/blog/hello")
	assert.Equal(t, ServiceSMS, d.Service)
	assert.Empty(t, d.Redirect)
}

func TestNavigate_ProtectedKeepsCurrentSelection(t *testing.T) {
	kv := store.NewMemory()
	r := New(kv)
	require.NoError(t, r.Select(ServiceSMS))

	d := r.Navigate("/account")
	assert.Equal(t, ServiceSMS, d.Service)
	assert.Empty(t, d.Redirect)
}

func TestSelectNoneClearsPersisted(t *testing.T) {
	kv := store.NewMemory()
	r := New(kv)
	require.NoError(t, r.Select(ServiceInventory))
	require.NoError(t, r.Select(ServiceNone))

	_, ok, err := kv.Get(store.KeyActiveService)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, r.Menu())
}

func TestRestore(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(store.KeyActiveService, "sms"))
	r := New(kv)

	assert.Equal(t, ServiceSMS, r.Restore())
	assert.Equal(t, ServiceSMS, r.Current())
}

func TestRestore_IgnoresCorruptValue(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(store.KeyActiveService, "garbage"))
	r := New(kv)

	assert.Equal(t, ServiceNone, r.Restore())
	assert.Equal(t, SelectServicePath, r.Navigate("/payments").Redirect)
}

func TestParseService(t *testing.T) {
	s, err := ParseService("SMS")
	require.NoError(t, err)
	assert.Equal(t, ServiceSMS, s)

	s, err = ParseService("none")
	require.NoError(t, err)
	assert.Equal(t, ServiceNone, s)

	_, err = ParseService("payroll")
	assert.Error(t, err)
}

func TestMenuFor(t *testing.T) {
	sms := MenuFor(ServiceSMS)
	inv := MenuFor(ServiceInventory)
	require.NotEmpty(t, sms)
	require.NotEmpty(t, inv)
	assert.NotEqual(t, sms, inv)
	assert.Nil(t, MenuFor(ServiceNone))

	for _, item := range sms {
		if Classify(item.Path) != ServiceNone {
			assert.Equal(t, ServiceSMS, Classify(item.Path), item.Path)
		}
	}
	for _, item := range inv {
		if Classify(item.Path) != ServiceNone {
			assert.Equal(t, ServiceInventory, Classify(item.Path), item.Path)
		}
	}

	// Returned menus are copies
	sms[0].Label = "changed"
	assert.NotEqual(t, "changed", MenuFor(ServiceSMS)[0].Label)
}
