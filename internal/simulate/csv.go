package simulate

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"dynamic-pricing/internal/model"
)

var ledgerHeader = []string{
	"period",
	"inventory_start",
	"price",
	"action",
	"sale_probability",
	"lambda",
	"demand",
	"units_sold",
	"revenue",
	"holding_cost",
	"profit",
	"discounted_profit",
	"cum_profit",
	"inventory_end",
}

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteLedger(f, ledger)
}

func WriteLedger(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(ledgerHeader); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Period),
			strconv.Itoa(r.InventoryStart),
			fmtFloat(r.Price),
			string(r.Action),
			fmtFloat(r.SaleProbability),
			fmtFloat(r.Lambda),
			strconv.Itoa(r.Demand),
			strconv.Itoa(r.UnitsSold),
			fmtFloat(r.Revenue),
			fmtFloat(r.HoldingCost),
			fmtFloat(r.Profit),
			fmtFloat(r.DiscountedProfit),
			fmtFloat(r.CumProfit),
			strconv.Itoa(r.InventoryEnd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WritePolicyCSV writes one row per state: t, n, price, value.
func WritePolicyCSV(path string, pol *model.Policy) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"t", "n", "price", "value"}); err != nil {
		return err
	}
	for t := 0; t <= pol.Horizon; t++ {
		for n := 0; n <= pol.Inventory; n++ {
			d, _ := pol.At(t, n)
			if err := w.Write([]string{strconv.Itoa(t), strconv.Itoa(n), fmtFloat(d.Price), fmtFloat(d.Value)}); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
