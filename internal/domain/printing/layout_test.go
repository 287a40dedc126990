package printing

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/suratjalan/internal/domain/shipping"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		size     int
		expected []int
	}{
		{"empty yields one empty group", 0, 14, []int{0}},
		{"fewer than size", 5, 14, []int{5}},
		{"exactly size", 14, 14, []int{14}},
		{"remainder", 18, 14, []int{14, 4}},
		{"evenly divisible", 28, 14, []int{14, 14}},
		{"zero size keeps everything", 30, 0, []int{30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := make([]int, tt.n)
			for i := range input {
				input[i] = i
			}
			groups := Chunk(input, tt.size)

			sizes := make([]int, len(groups))
			var flat []int
			for i, g := range groups {
				sizes[i] = len(g)
				flat = append(flat, g...)
			}
			assert.Equal(t, tt.expected, sizes)
			if tt.n > 0 {
				assert.Equal(t, input, flat)
			}
		})
	}

	t.Run("groups do not alias the input", func(t *testing.T) {
		input := []int{1, 2, 3}
		groups := Chunk(input, 2)
		groups[0][0] = 99
		assert.Equal(t, 1, input[0])
	})
}

func TestBuildLayout_SinglePagePadding(t *testing.T) {
	f := gofakeit.New(11)
	for n := 0; n <= 11; n++ {
		items := fakeItems(f, n)
		layout, err := BuildLayout(testDocument(t, items), SinglePage())
		require.NoError(t, err)
		require.Len(t, layout.Pages, 1)

		table := layout.Pages[0].Table
		assert.Len(t, table.Rows, 11, "n=%d", n)
		assert.Equal(t, 11-n, table.BlankRows(), "n=%d", n)
		assert.Equal(t, items, table.Items(), "n=%d", n)
		for i, row := range table.Rows {
			if i < n {
				assert.Equal(t, RowItem, row.Kind)
			} else {
				assert.Equal(t, RowBlank, row.Kind)
			}
		}
	}
}

func TestBuildLayout_SinglePageOverflow(t *testing.T) {
	f := gofakeit.New(12)
	for _, n := range []int{12, 20, 57} {
		items := fakeItems(f, n)
		layout, err := BuildLayout(testDocument(t, items), SinglePage())
		require.NoError(t, err)
		require.Len(t, layout.Pages, 1)

		table := layout.Pages[0].Table
		assert.Len(t, table.Rows, n)
		assert.Zero(t, table.BlankRows())
		assert.Equal(t, items, table.Items())
	}
}

func TestBuildLayout_MultiPagePartition(t *testing.T) {
	f := gofakeit.New(13)
	for _, n := range []int{1, 13, 14, 15, 18, 28, 29, 100} {
		items := fakeItems(f, n)
		layout, err := BuildLayout(testDocument(t, items), MultiPage())
		require.NoError(t, err)

		expectedPages := (n + 13) / 14
		require.Len(t, layout.Pages, expectedPages, "n=%d", n)
		assert.Equal(t, items, layout.Items(), "n=%d", n)

		for i, page := range layout.Pages {
			assert.Equal(t, i+1, page.Number)
			assert.Len(t, page.Table.Rows, 14, "n=%d page=%d", n, i+1)
		}
	}
}

func TestBuildLayout_MultiPageEmpty(t *testing.T) {
	layout, err := BuildLayout(testDocument(t, nil), MultiPage())
	require.NoError(t, err)
	require.Len(t, layout.Pages, 1)
	assert.Equal(t, 14, layout.Pages[0].Table.BlankRows())
	assert.Empty(t, layout.Items())
}

func TestBuildLayout_SinglePageExample(t *testing.T) {
	items := []shipping.LineItem{
		{No: 1, Description: "Keran Tembok AWET PVC JC 05 (Pieces)", Quantity: decimal.NewFromInt(24), Unit: "PCS", Remark: "P3"},
		{No: 2, Description: "Keran Tembok AWET PVC JC 06 (Pieces)", Quantity: decimal.NewFromInt(24), Unit: "PCS", Remark: "P3"},
		{No: 3, Description: "Kondom Keran AWET KK01 1/2 Inchi (Toples 40 Pieces)", Quantity: decimal.NewFromInt(1), Unit: "PCS", Remark: "P3"},
		{No: 4, Description: "Keran Tembok AWET PVC JC 05 (Pieces)", Quantity: decimal.NewFromInt(1), Unit: "PCS", Remark: "P3"},
	}
	layout, err := BuildLayout(testDocument(t, items), SinglePage())
	require.NoError(t, err)
	page := layout.Pages[0]

	assert.Len(t, page.Table.Rows, 11)
	assert.Equal(t, 7, page.Table.BlankRows())

	first := page.Table.Rows[0]
	assert.Equal(t, []string{"1", "Keran Tembok AWET PVC JC 05 (Pieces)", "24", "PCS", "P3"}, cellTexts(first.Cells))
	for _, c := range first.Cells {
		assert.Equal(t, BorderSides, c.Border)
	}

	footer := page.Table.Footer
	require.Len(t, footer.Cells, 5)
	assert.Equal(t, "Orderan Merchant: ORD/202512/6067 - Online DOUBLE 23\nExpedisi: BPAS - KRWG Rit: 1", footer.Cells[1].Text())
	assert.False(t, footer.Cells[1].Lines[0].Bold)
	assert.True(t, footer.Cells[1].Lines[1].Bold)
	for _, c := range footer.Cells {
		assert.True(t, c.Border.Has(BorderBottom))
		assert.Equal(t, 1, c.Span)
	}

	assert.Equal(t, []string{"NO", "JENIS & UKURAN BARANG", "JUMLAH", "KET", "P1/P2/SISA"}, cellTexts(page.Table.Header.Cells))
	for _, c := range page.Table.Header.Cells {
		assert.Equal(t, BorderAll, c.Border)
	}
}

func TestBuildLayout_MultiPageExample(t *testing.T) {
	items := fakeItems(gofakeit.New(18), 18)
	layout, err := BuildLayout(testDocument(t, items), MultiPage())
	require.NoError(t, err)
	require.Len(t, layout.Pages, 2)

	assert.Equal(t, items[:14], layout.Pages[0].Table.Items())
	assert.Zero(t, layout.Pages[0].Table.BlankRows())
	assert.Equal(t, items[14:], layout.Pages[1].Table.Items())
	assert.Equal(t, 10, layout.Pages[1].Table.BlankRows())

	for _, page := range layout.Pages {
		footer := page.Table.Footer
		require.Len(t, footer.Cells, 3)
		spans := 0
		for _, c := range footer.Cells {
			assert.True(t, c.IsEmpty())
			spans += c.Span
		}
		assert.Equal(t, TableColumns, spans)

		// header, intro and signatures repeat on every sheet
		assert.Equal(t, layout.Pages[0].Header, page.Header)
		assert.Equal(t, layout.Pages[0].Signatures, page.Signatures)
	}
}

func TestBuildLayout_PreservesCallerNumbers(t *testing.T) {
	items := []shipping.LineItem{
		{No: 10, Description: "A", Quantity: decimal.NewFromInt(1), Unit: "PCS"},
		{No: 3, Description: "B", Quantity: decimal.NewFromInt(1), Unit: "PCS"},
		{No: 7, Description: "C", Quantity: decimal.NewFromInt(1), Unit: "PCS"},
	}
	layout, err := BuildLayout(testDocument(t, items), SinglePage())
	require.NoError(t, err)

	rows := layout.Pages[0].Table.Rows
	assert.Equal(t, "10", rows[0].Cells[0].Text())
	assert.Equal(t, "3", rows[1].Cells[0].Text())
	assert.Equal(t, "7", rows[2].Cells[0].Text())
}

func TestBuildLayout_HeaderAndIntro(t *testing.T) {
	layout, err := BuildLayout(testDocument(t, nil), SinglePage())
	require.NoError(t, err)
	page := layout.Pages[0]

	require.Len(t, page.Header.Rows, 2)
	assert.Equal(t, []float64{2, 2.5}, page.Header.Weights)
	assert.Equal(t, "SURAT JALAN", page.Header.Rows[0].Cells[0].Text())
	assert.Equal(t, float64(TitleFontSize), page.Header.Rows[0].Cells[0].Lines[0].Size)
	assert.Equal(t, "Dikirim ke: KURNIA", page.Header.Rows[0].Cells[1].Text())
	assert.Equal(t, "No: 260000005/KR/SJ/I/2026\nTBB", page.Header.Rows[1].Cells[0].Text())

	assert.Equal(t, "Dengan Hormat", page.Intro[0].Text)
	assert.Equal(t, "Harap diterima barang-barang dibawah ini sesuai DO No. 25129103814/XII/2025", page.Intro[1].Text)
	assert.Equal(t, []string{"Tanggal: 02/01/2026", "OP: 25129103814", "Tanggal Kirim: 02/01/2026"}, cellTexts(page.Dates.Rows[0].Cells))
	assert.Equal(t, ClosingLine, page.Closing.Text)

	assert.Equal(t, "Surat Jalan 260000005/KR/SJ/I/2026", layout.Metadata.Title)
	assert.True(t, layout.Metadata.CreatedAt.Equal(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)))
}

func TestBuildLayout_Signatures(t *testing.T) {
	t.Run("present names", func(t *testing.T) {
		layout, err := BuildLayout(testDocument(t, nil), SinglePage())
		require.NoError(t, err)
		sig := layout.Pages[0].Signatures

		require.Len(t, sig.Rows, 4)
		assert.Equal(t, SignatureTitles, cellTexts(sig.Rows[0].Cells))
		assert.Equal(t, []string{"", "", "B 9591 B", ""}, cellTexts(sig.Rows[1].Cells))
		assert.Equal(t, float64(SignatureSpacerHeight), sig.Rows[2].MinHeight)
		assert.Equal(t, "( WAHYUDI )", sig.Rows[3].Cells[0].Text())
		assert.Equal(t, "( M. NUR HABIB )", sig.Rows[3].Cells[1].Text())
		assert.Equal(t, SignatoryName(""), sig.Rows[3].Cells[2].Text())
	})

	t.Run("missing names keep the column layout", func(t *testing.T) {
		p := testParams(nil)
		p.WarehouseHead = ""
		p.WarehouseStaff = "   "
		doc, err := shipping.NewDocument(p)
		require.NoError(t, err)

		withNames, err := BuildLayout(testDocument(t, nil), SinglePage())
		require.NoError(t, err)
		without, err := BuildLayout(doc, SinglePage())
		require.NoError(t, err)

		a := withNames.Pages[0].Signatures
		b := without.Pages[0].Signatures
		assert.Equal(t, a.Widths(500), b.Widths(500))
		assert.Len(t, b.Rows[3].Cells, 4)
		assert.Equal(t, "( "+BlankSignatory+" )", b.Rows[3].Cells[0].Text())
		assert.Equal(t, "( "+BlankSignatory+" )", b.Rows[3].Cells[1].Text())
		assert.Len(t, BlankSignatory, 32)
	})
}

func TestBuildLayout_Deterministic(t *testing.T) {
	items := fakeItems(gofakeit.New(21), 30)
	doc := testDocument(t, items)

	a, err := BuildLayout(doc, MultiPage())
	require.NoError(t, err)
	b, err := BuildLayout(doc, MultiPage())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildLayout_Errors(t *testing.T) {
	_, err := BuildLayout(nil, SinglePage())
	assert.ErrorIs(t, err, shipping.ErrInvalidDocument)

	spec := SinglePage()
	spec.RowHeight = 0
	_, err = BuildLayout(testDocument(t, nil), spec)
	assert.Error(t, err)
}

func TestLayoutSpec_RepeatsPageChrome(t *testing.T) {
	assert.False(t, SinglePage().RepeatsPageChrome())
	assert.True(t, MultiPage().RepeatsPageChrome())
}

// A 21x14cm sheet only holds a full chunk of 14 rows at 12pt.
func TestLayoutSpec_RowHeights(t *testing.T) {
	assert.Equal(t, 14.0, SinglePage().RowHeight)
	assert.Equal(t, 12.0, MultiPage().RowHeight)
}

func TestTable_Widths(t *testing.T) {
	table := Table{Columns: ItemColumns}
	widths := table.Widths(555)
	assert.Equal(t, []float64{30, 355, 60, 50, 60}, widths)
}

func TestGrid_Widths(t *testing.T) {
	g := Grid{Weights: []float64{2, 2.5}}
	widths := g.Widths(450)
	assert.InDelta(t, 200, widths[0], 1e-9)
	assert.InDelta(t, 250, widths[1], 1e-9)
	assert.Equal(t, []float64{}, Grid{}.Widths(100))
}

func cellTexts(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text()
	}
	return out
}
