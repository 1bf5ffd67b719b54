package relay

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func TestEncodeGatewayPayload(t *testing.T) {
	s := SanitizeSubmission(BillingSubmission{BillNo: "123", BillName: "田中", BillKana: "タナカ", BillMail: "a@b.com"})
	body, err := EncodeGatewayPayload(FormFields(s, testCreds, testGateway, "ORDER1"))
	if err != nil {
		t.Fatalf("EncodeGatewayPayload failed: %v", err)
	}

	// fields keep protocol order
	if !strings.HasPrefix(string(body), "version=100&shop_cd=SHOP001&") {
		t.Errorf("unexpected payload prefix: %s", body)
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		t.Fatalf("payload is not urlencoded: %v", err)
	}
	if values.Get("shop_pwd") != "secretX" || values.Get("fs") != "tokY" {
		t.Error("credentials not carried in payload")
	}

	name, err := japanese.ShiftJIS.NewDecoder().String(values.Get("bill_name"))
	if err != nil {
		t.Fatalf("bill_name is not Shift_JIS: %v", err)
	}
	if name != "田中" {
		t.Errorf("bill_name: got %q, want 田中", name)
	}
}

func TestEncodeGatewayPayloadDecodesEntities(t *testing.T) {
	s := SanitizeSubmission(BillingSubmission{BillNo: "1", BillName: "a/b", BillKana: "c"})
	body, err := EncodeGatewayPayload(FormFields(s, testCreds, testGateway, "O"))
	if err != nil {
		t.Fatalf("EncodeGatewayPayload failed: %v", err)
	}
	values, _ := url.ParseQuery(string(body))
	if got := values.Get("bill_name"); got != "a/b" {
		t.Errorf("bill_name: got %q, want %q", got, "a/b")
	}
}

func TestEncodeGatewayPayloadUnencodable(t *testing.T) {
	s := SanitizeSubmission(BillingSubmission{BillNo: "1", BillName: "😀", BillKana: "c"})
	_, err := EncodeGatewayPayload(FormFields(s, testCreds, testGateway, "O"))
	if !errors.Is(err, ErrUnencodable) {
		t.Fatalf("expected ErrUnencodable, got %v", err)
	}
	if !strings.Contains(err.Error(), "bill_name") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestCheckEncodable(t *testing.T) {
	if err := CheckEncodable(SanitizeSubmission(BillingSubmission{BillName: "田中", BillKana: "タナカ"})); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := CheckEncodable(SanitizeSubmission(BillingSubmission{BillName: "😀", BillAddress: "🏠"}))
	if !errors.Is(err, ErrUnencodable) {
		t.Fatalf("expected ErrUnencodable, got %v", err)
	}
	if !strings.Contains(err.Error(), "bill_name, bill_adr_1") {
		t.Errorf("error should list the fields: %v", err)
	}
}
