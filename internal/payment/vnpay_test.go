package payment

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ngocminh/silvershop/internal/config"
)

func vnpayTestConfig() config.VNPayConfig {
	return config.VNPayConfig{
		TmnCode:    "TESTTMN",
		HashSecret: "hash-secret",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://shop.example/return",
	}
}

func TestVNPayCreatePaymentURL(t *testing.T) {
	client := NewVNPayClient(vnpayTestConfig())
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	raw := client.CreatePaymentURL(77, 19900000, "203.0.113.9", now)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	require.Equal(t, "2.1.0", q.Get("vnp_Version"))
	require.Equal(t, "pay", q.Get("vnp_Command"))
	require.Equal(t, "TESTTMN", q.Get("vnp_TmnCode"))
	require.Equal(t, "19900000", q.Get("vnp_Amount"))
	require.Equal(t, "77", q.Get("vnp_TxnRef"))
	require.Equal(t, "20250314092653", q.Get("vnp_CreateDate"))
	require.Equal(t, "203.0.113.9", q.Get("vnp_IpAddr"))
	require.NotEmpty(t, q.Get("vnp_SecureHash"))

	// The emitted URL must verify under the same contract as an IPN.
	require.True(t, client.VerifyIPN(q))
}

func TestVNPayCreatePaymentURLDefaultsClientIP(t *testing.T) {
	client := NewVNPayClient(vnpayTestConfig())
	raw := client.CreatePaymentURL(1, 1000, "", time.Now())
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", u.Query().Get("vnp_IpAddr"))
}

func TestVNPayVerifyIPNRejectsTamperedQuery(t *testing.T) {
	client := NewVNPayClient(vnpayTestConfig())
	raw := client.CreatePaymentURL(5, 50000, "203.0.113.9", time.Now())
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	q.Set("vnp_Amount", "1")
	require.False(t, client.VerifyIPN(q))
}

func TestVNPayVerifyIPNRejectsMissingHash(t *testing.T) {
	client := NewVNPayClient(vnpayTestConfig())
	q := url.Values{}
	q.Set("vnp_TxnRef", "5")
	q.Set("vnp_ResponseCode", "00")
	require.False(t, client.VerifyIPN(q))
}

func TestVNPayVerifyIPNIgnoresSecureHashType(t *testing.T) {
	client := NewVNPayClient(vnpayTestConfig())
	raw := client.CreatePaymentURL(9, 70000, "203.0.113.9", time.Now())
	u, err := url.Parse(raw)
	require.NoError(t, err)

	// Gateways may append vnp_SecureHashType; it is excluded from the
	// signed string and must not break verification.
	q := u.Query()
	q.Set("vnp_SecureHashType", "HmacSHA512")
	require.True(t, client.VerifyIPN(q))
}

func TestSignStringIsSortedAndUnencoded(t *testing.T) {
	s := signString(map[string]string{
		"b": "2",
		"a": "1 with space",
		"c": "3",
	})
	require.Equal(t, "a=1 with space&b=2&c=3", s)
}
