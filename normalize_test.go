package settlement

import "testing"

func TestClassify(t *testing.T) {
	testCases := []struct {
		label string
		want  Side
	}{
		{"Покупка", Buy},
		{"покупка ЦБ", Buy},
		{"Куплено", Buy},
		{"Buy", Buy},
		{"Swap открытие. Покупка.", Buy},
		{"Продажа", Sell},
		{"продажа ЦБ", Sell},
		{"Sell", Sell},
		{"Swap закрытие. Продажа.", Sell},
		// the buy lexicon wins when both match
		{"Покупка/продажа", Buy},
		{"Перевод", Unresolved},
		{"", Unresolved},
	}
	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			if got := Classify(tc.label); got != tc.want {
				t.Errorf("Classify(%q) = %v, want %v", tc.label, got, tc.want)
			}
		})
	}
}

func TestIsLotSource(t *testing.T) {
	testCases := []struct {
		label string
		want  bool
	}{
		{"Покупка", true},
		{"Buy", true},
		{"Остаток на начало. Открытие.", true},
		{"открытие позиции", true},
		{"Продажа", false},
		{"Перевод", false},
	}
	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			if got := IsLotSource(tc.label); got != tc.want {
				t.Errorf("IsLotSource(%q) = %v, want %v", tc.label, got, tc.want)
			}
		})
	}
}

func TestParseDecimal(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "1234.56", want: "1234.56"},
		{name: "comma separator", in: "1234,56", want: "1234.56"},
		{name: "spaced thousands", in: "1 234,56", want: "1234.56"},
		{name: "no-break space", in: "12 345,07", want: "12345.07"},
		{name: "empty is zero", in: "", want: "0"},
		{name: "blank is zero", in: "  ", want: "0"},
		{name: "negative", in: "-5,5", want: "-5.5"},
		{name: "garbage", in: "n/a", wantErr: true},
		{name: "two separators", in: "1,2,3", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDecimal(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimal(%q) = %s, want an error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimal(%q): %v", tc.in, err)
			}
			if got.String() != tc.want {
				t.Errorf("ParseDecimal(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Quantity
		wantErr bool
	}{
		{name: "plain", in: "15", want: 15},
		{name: "empty is zero", in: "", want: 0},
		{name: "spaced", in: "1 500", want: 1500},
		{name: "negative", in: "-3", wantErr: true},
		{name: "fractional", in: "2,5", wantErr: true},
		{name: "garbage", in: "ten", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseQuantity(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseQuantity(%q) = %d, want an error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuantity(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseQuantity(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
