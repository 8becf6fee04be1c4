package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled} {
		require.True(t, ValidOrderStatus(s), s)
	}
	require.False(t, ValidOrderStatus("returned"))
	require.False(t, ValidOrderStatus(""))
	require.False(t, ValidOrderStatus("PAID"))
}

func TestTerminalOrderStatus(t *testing.T) {
	require.True(t, TerminalOrderStatus(OrderCancelled))
	require.True(t, TerminalOrderStatus(OrderDelivered))
	require.False(t, TerminalOrderStatus(OrderPending))
	require.False(t, TerminalOrderStatus(OrderPaid))
	require.False(t, TerminalOrderStatus(OrderShipped))
}

func TestShippingAddressComplete(t *testing.T) {
	full := ShippingAddress{
		Name:         "Nguyen Van A",
		Phone:        "0900000000",
		AddressLine1: "1 Tran Hung Dao",
		City:         "Ha Noi",
		PostalCode:   "100000",
		Country:      "VN",
	}
	require.True(t, full.Complete())

	// AddressLine2 and State are optional.
	full.AddressLine2 = ""
	full.State = ""
	require.True(t, full.Complete())

	missingPhone := full
	missingPhone.Phone = ""
	require.False(t, missingPhone.Complete())

	missingCountry := full
	missingCountry.Country = ""
	require.False(t, missingCountry.Complete())
}
