package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ngocminh/silvershop/internal/config"
)

// VNPayClient builds hosted-payment-page URLs and verifies IPN queries.
// VNPay signs with HMAC-SHA512 over the alphabetically sorted parameter
// string.
type VNPayClient struct {
	cfg config.VNPayConfig
}

func NewVNPayClient(cfg config.VNPayConfig) *VNPayClient {
	return &VNPayClient{cfg: cfg}
}

// CreatePaymentURL returns the redirect URL for an order. Amounts are in
// minor currency units, which is exactly what vnp_Amount expects (VND
// times one hundred).
func (v *VNPayClient) CreatePaymentURL(orderID uint64, amount int64, clientIP string, now time.Time) string {
	if clientIP == "" {
		clientIP = "127.0.0.1"
	}
	oid := fmt.Sprintf("%d", orderID)
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    v.cfg.TmnCode,
		"vnp_Amount":     fmt.Sprintf("%d", amount),
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     oid,
		"vnp_OrderInfo":  "Thanh toan don hang " + oid,
		"vnp_OrderType":  "other",
		"vnp_Locale":     "vn",
		"vnp_ReturnUrl":  v.cfg.ReturnURL,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": now.UTC().Format("20060102150405"),
	}

	secureHash := hmacSHA512Hex(v.cfg.HashSecret, signString(params))

	// Build the final query encoded, with the hash appended.
	q := url.Values{}
	for k, val := range params {
		q.Set(k, val)
	}
	q.Set("vnp_SecureHash", secureHash)
	return v.cfg.PayURL + "?" + q.Encode()
}

// VerifyIPN validates the vnp_SecureHash of an inbound notification
// query. The hash fields themselves are excluded from the signed string.
func (v *VNPayClient) VerifyIPN(query url.Values) bool {
	got := query.Get("vnp_SecureHash")
	if got == "" {
		return false
	}
	params := make(map[string]string, len(query))
	for k := range query {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		params[k] = query.Get(k)
	}
	want := hmacSHA512Hex(v.cfg.HashSecret, signString(params))
	return hmac.Equal([]byte(want), []byte(got))
}

func hmacSHA512Hex(key, data string) string {
	h := hmac.New(sha512.New, []byte(key))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// signString joins the parameters as key=value pairs in alphabetical key
// order, unencoded, matching the gateway's signing contract.
func signString(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}
