package paymentControllers

import "testing"

func TestValidCardNumber(t *testing.T) {
	valid := []string{
		"4111111111111111",
		"4111-1111-1111-1111",
		"5500 0000 0000 0004",
	}
	for _, n := range valid {
		if !ValidCardNumber(n) {
			t.Errorf("ValidCardNumber(%q) = false, want true", n)
		}
	}

	invalid := []string{
		"",
		"4111",
		"4111-1111-1111-111",
		"4111111111111111111",
		"abcd-efgh-ijkl-mnop",
		"4111_1111_1111_1111",
	}
	for _, n := range invalid {
		if ValidCardNumber(n) {
			t.Errorf("ValidCardNumber(%q) = true, want false", n)
		}
	}
}

func TestValidExpiry(t *testing.T) {
	for _, e := range []string{"01/26", "12/30"} {
		if !ValidExpiry(e) {
			t.Errorf("ValidExpiry(%q) = false, want true", e)
		}
	}
	for _, e := range []string{"", "13/26", "00/26", "1/26", "01-26", "01/2026"} {
		if ValidExpiry(e) {
			t.Errorf("ValidExpiry(%q) = true, want false", e)
		}
	}
}

func TestMaskLast4(t *testing.T) {
	if got := MaskLast4("4111-1111-1111-1234"); got != "1234" {
		t.Errorf("MaskLast4 = %q, want 1234", got)
	}
	if got := MaskLast4("5500 0000 0000 0004"); got != "0004" {
		t.Errorf("MaskLast4 = %q, want 0004", got)
	}
}

func TestDetectNetwork(t *testing.T) {
	cases := map[string]string{
		"4111111111111111": "visa",
		"5500000000000004": "mastercard",
		"3400000000000009": "amex",
		"6011000000000004": "card",
	}
	for number, want := range cases {
		if got := DetectNetwork(number); got != want {
			t.Errorf("DetectNetwork(%q) = %q, want %q", number, got, want)
		}
	}
}
