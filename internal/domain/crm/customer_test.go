package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer successfully", func(t *testing.T) {
		customer, err := NewCustomer("Lim Wei Ming", "012-3456789", "wei.ming@example.com")

		require.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, "Lim Wei Ming", customer.Name)
		assert.Equal(t, "012-3456789", customer.Phone)
		assert.Equal(t, "wei.ming@example.com", customer.Email)
		assert.Equal(t, 1, customer.Version)
	})

	t.Run("lowercases email", func(t *testing.T) {
		customer, err := NewCustomer("Aisyah", "", "Aisyah@Example.COM")

		require.NoError(t, err)
		assert.Equal(t, "aisyah@example.com", customer.Email)
	})

	t.Run("allows empty phone and email", func(t *testing.T) {
		customer, err := NewCustomer("Walk In", "", "")

		require.NoError(t, err)
		assert.Empty(t, customer.Phone)
		assert.Empty(t, customer.Email)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		customer, err := NewCustomer("  ", "", "")

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with invalid phone", func(t *testing.T) {
		customer, err := NewCustomer("Tan", "not-a-phone!", "")

		assert.Error(t, err)
		assert.Nil(t, customer)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		customer, err := NewCustomer("Tan", "", "invalid-email")

		assert.Error(t, err)
		assert.Nil(t, customer)
	})
}

func TestCustomerUpdate(t *testing.T) {
	customer, err := NewCustomer("Old Name", "", "")
	require.NoError(t, err)

	t.Run("updates fields and bumps version", func(t *testing.T) {
		err := customer.Update("New Name", "011-2223344", "new@example.com")

		require.NoError(t, err)
		assert.Equal(t, "New Name", customer.Name)
		assert.Equal(t, "011-2223344", customer.Phone)
		assert.Equal(t, 2, customer.Version)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		err := customer.Update("", "", "")

		assert.Error(t, err)
		assert.Equal(t, "New Name", customer.Name)
	})
}

func TestCustomerSetAddress(t *testing.T) {
	customer, err := NewCustomer("Siti", "", "")
	require.NoError(t, err)

	t.Run("sets unit number and address", func(t *testing.T) {
		err := customer.SetAddress("B-12-3", "Jalan Ampang, 50450 Kuala Lumpur")

		require.NoError(t, err)
		assert.Equal(t, "B-12-3", customer.UnitNumber)
		assert.Equal(t, "Jalan Ampang, 50450 Kuala Lumpur", customer.Address)
	})

	t.Run("rejects oversized unit number", func(t *testing.T) {
		err := customer.SetAddress(string(make([]byte, 51)), "addr")

		assert.Error(t, err)
	})
}

func TestNewServiceCategory(t *testing.T) {
	t.Run("creates category successfully", func(t *testing.T) {
		cat, err := NewServiceCategory("Plumbing", "Pipe and sanitary works")

		require.NoError(t, err)
		assert.Equal(t, "Plumbing", cat.Name)
		assert.Equal(t, "Pipe and sanitary works", cat.Description)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		cat, err := NewServiceCategory("", "")

		assert.Error(t, err)
		assert.Nil(t, cat)
	})
}
