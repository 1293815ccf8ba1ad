package plusvalia

import "testing"

func TestAssessSavingsIncomeTax(t *testing.T) {
	tests := []struct {
		name    string
		netGain Money
		want    Money
	}{
		{"zero", EUR(0), EUR(0)},
		{"loss", EUR(-5_000), EUR(0)},
		{"inside first band", EUR(1_000), EUR(190)},
		{"first band boundary", EUR(6_000), EUR(1_140)},
		{"second band", EUR(10_000), EUR(1_980)},             // 1140 + 4000*0.21
		{"worked scenario gain", EUR(12_500), EUR(2_505)},    // 1140 + 6500*0.21
		{"second band boundary", EUR(50_000), EUR(10_380)},   // 1140 + 44000*0.21
		{"third band", EUR(100_000), EUR(21_880)},            // 10380 + 50000*0.23
		{"third band boundary", EUR(200_000), EUR(44_880)},   // 10380 + 150000*0.23
		{"top band", EUR(250_000), EUR(57_880)},              // 44880 + 50000*0.26
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessSavingsIncomeTax(tt.netGain)
			if !got.Tax.Equal(tt.want) {
				t.Errorf("AssessSavingsIncomeTax(%s).Tax = %s, want %s", tt.netGain, got.Tax, tt.want)
			}
		})
	}
}

func TestAssessSavingsIncomeTax_LossFloorsBase(t *testing.T) {
	a := AssessSavingsIncomeTax(EUR(-5_000))
	if !a.TaxableBase.IsZero() {
		t.Errorf("TaxableBase = %s, want 0", a.TaxableBase)
	}
	if !a.NetGain.Equal(EUR(-5_000)) {
		t.Errorf("NetGain = %s, the original figure must survive", a.NetGain)
	}
	if len(a.Bands) != 0 {
		t.Errorf("Bands = %+v, want none", a.Bands)
	}
}

func TestAssessSavingsIncomeTax_Bands(t *testing.T) {
	a := AssessSavingsIncomeTax(EUR(60_000))
	if len(a.Bands) != 3 {
		t.Fatalf("Bands = %d, want 3", len(a.Bands))
	}
	if !a.Bands[0].Taxable.Equal(EUR(6_000)) || !a.Bands[0].Rate.Equal(0.19) {
		t.Errorf("band 0 = %+v, want 6000 at 19%%", a.Bands[0])
	}
	if !a.Bands[1].Taxable.Equal(EUR(44_000)) || !a.Bands[1].Rate.Equal(0.21) {
		t.Errorf("band 1 = %+v, want 44000 at 21%%", a.Bands[1])
	}
	if !a.Bands[2].Taxable.Equal(EUR(10_000)) || !a.Bands[2].Rate.Equal(0.23) {
		t.Errorf("band 2 = %+v, want 10000 at 23%%", a.Bands[2])
	}
	var sum Money
	for _, b := range a.Bands {
		sum = sum.Add(b.Tax)
	}
	if !sum.Equal(a.Tax) {
		t.Errorf("band taxes sum to %s, total says %s", sum, a.Tax)
	}
}

func TestAssessSavingsIncomeTax_Monotonic(t *testing.T) {
	prev := AssessSavingsIncomeTax(EUR(0)).Tax
	for _, base := range []float64{100, 5_999, 6_000, 6_001, 49_999, 50_000, 50_001, 199_999, 200_000, 200_001, 1_000_000} {
		got := AssessSavingsIncomeTax(EUR(base)).Tax
		if got.LessThan(prev) {
			t.Fatalf("tax decreased: %s at base %v after %s", got, base, prev)
		}
		prev = got
	}
}

func TestAssessSavingsIncomeTax_EffectiveRate(t *testing.T) {
	a := AssessSavingsIncomeTax(EUR(6_000))
	if !a.EffectiveRate.Equal(0.19) {
		t.Errorf("EffectiveRate = %v, want 0.19", a.EffectiveRate)
	}
}
