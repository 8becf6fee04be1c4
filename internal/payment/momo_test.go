package payment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngocminh/silvershop/internal/config"
)

func momoTestConfig() config.MomoConfig {
	return config.MomoConfig{
		PartnerCode: "MOMOTEST",
		AccessKey:   "access-key",
		SecretKey:   "secret-key",
		RedirectURL: "https://shop.example/return",
		IPNURL:      "https://shop.example/api/payments/momo/ipn",
	}
}

func signedIPN(cfg config.MomoConfig, n MomoIPN) MomoIPN {
	raw := fmt.Sprintf("accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		cfg.AccessKey, n.Amount, n.ExtraData, n.Message, n.OrderID, n.OrderInfo, n.OrderType,
		n.PartnerCode, n.PayType, n.RequestID, n.ResponseTime, n.ResultCode, n.TransID)
	n.Signature = hmacSHA256Hex(cfg.SecretKey, raw)
	return n
}

func TestMomoVerifyIPNAcceptsValidSignature(t *testing.T) {
	cfg := momoTestConfig()
	client := NewMomoClient(cfg)

	n := signedIPN(cfg, MomoIPN{
		PartnerCode:  cfg.PartnerCode,
		OrderID:      "42",
		RequestID:    "42-170000",
		Amount:       150000,
		OrderInfo:    "Thanh toan don hang 42",
		OrderType:    "momo_wallet",
		TransID:      987654321,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1700000000000,
	})
	require.True(t, client.VerifyIPN(n))
}

func TestMomoVerifyIPNRejectsTamperedAmount(t *testing.T) {
	cfg := momoTestConfig()
	client := NewMomoClient(cfg)

	n := signedIPN(cfg, MomoIPN{
		PartnerCode: cfg.PartnerCode,
		OrderID:     "42",
		RequestID:   "42-170000",
		Amount:      150000,
		ResultCode:  0,
		TransID:     1,
	})
	n.Amount = 1
	require.False(t, client.VerifyIPN(n))
}

func TestMomoVerifyIPNRejectsMissingSignature(t *testing.T) {
	client := NewMomoClient(momoTestConfig())
	require.False(t, client.VerifyIPN(MomoIPN{OrderID: "42", ResultCode: 0}))
}

func TestMomoVerifyIPNRejectsWrongKey(t *testing.T) {
	cfg := momoTestConfig()
	n := signedIPN(cfg, MomoIPN{PartnerCode: cfg.PartnerCode, OrderID: "7", ResultCode: 0})

	other := cfg
	other.SecretKey = "some-other-key"
	require.False(t, NewMomoClient(other).VerifyIPN(n))
}
