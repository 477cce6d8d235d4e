// gensales writes a synthetic set of the three source reports for local
// runs against an empty warehouse. It deliberately includes dirty rows
// (missing skus, unparsable dates, duplicate master entries) so the
// reconciliation gates have something to do.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
)

func main() {
	var (
		dir   string
		count int
		seed  int64
	)
	flag.StringVar(&dir, "dir", "./data", "output directory")
	flag.IntVar(&count, "count", 200, "marketplace rows to generate")
	flag.Int64Var(&seed, "seed", 42, "rng seed")
	flag.Parse()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	rng := rand.New(rand.NewSource(seed))

	if err := writeMarketplace(filepath.Join(dir, "Amazon Sale Report.csv"), count, rng); err != nil {
		log.Fatalf("marketplace report: %v", err)
	}
	if err := writeWholesale(filepath.Join(dir, "International sale Report.csv"), count/4, rng); err != nil {
		log.Fatalf("wholesale report: %v", err)
	}
	if err := writeMaster(filepath.Join(dir, "Sale Report.csv"), rng); err != nil {
		log.Fatalf("product master: %v", err)
	}
	log.Printf("wrote fixture reports to %s", dir)
}

var (
	skus       = []string{"JNE1001-M", "JNE1002-L", "JNE1003-S", "SET2001-XL", "SET2002-M", "KUR3001-L"}
	styles     = []string{"JNE1001", "JNE1002", "JNE1003", "SET2001", "SET2002", "KUR3001"}
	categories = []string{"Kurta", "Set", "Western Dress", "Top"}
	sizes      = []string{"S", "M", "L", "XL"}
	colors     = []string{"Red", "Blue", "Green", "Black", "White"}
	cities     = []string{"MUMBAI", "DELHI", "BENGALURU", "PUNE", "CHENNAI"}
	states     = []string{"MAHARASHTRA", "DELHI", "KARNATAKA", "TAMIL NADU"}
	customers  = []string{"ACME RETAIL", "GLOBAL TRADE CO", "NORTH STAR EXPORTS"}
)

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeMarketplace(path string, count int, rng *rand.Rand) error {
	header := []string{
		"index", "Order ID", "Date", "Status", "Fulfilment", "Sales Channel",
		"ship-service-level", "Style", "SKU", "Category", "Size", "ASIN",
		"Courier Status", "Qty", "currency", "Amount", "ship-city",
		"ship-state", "ship-postal-code", "ship-country", "promotion-ids",
		"B2B", "fulfilled-by", "Unnamed: 22",
	}
	rows := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		idx := rng.Intn(len(skus))
		prefix := []string{"B", "S", "D"}[rng.Intn(3)]
		sku := skus[idx]
		date := fmt.Sprintf("%02d-%02d-22", 4+rng.Intn(3), 1+rng.Intn(28))
		amount := fmt.Sprintf("%d.00", 199+rng.Intn(900))
		switch {
		case i%37 == 0:
			sku = "" // dropped by the sku gate
		case i%53 == 0:
			date = "not-a-date" // dropped by the temporal gate
		}
		rows = append(rows, []string{
			fmt.Sprint(i), fmt.Sprintf("%s%07d", prefix, i), date, "Shipped",
			"Amazon", "Amazon.in", "Expedited", styles[idx], sku,
			categories[rng.Intn(len(categories))], sizes[rng.Intn(len(sizes))],
			fmt.Sprintf("B0%08d", rng.Intn(99999999)), "Shipped",
			fmt.Sprint(1 + rng.Intn(3)), "INR", amount,
			cities[rng.Intn(len(cities))], states[rng.Intn(len(states))],
			fmt.Sprint(400001 + rng.Intn(99999)), "IN", "",
			[]string{"True", "False"}[rng.Intn(2)], "Easy Ship", "",
		})
	}
	return writeCSV(path, header, rows)
}

func writeWholesale(path string, count int, rng *rand.Rand) error {
	header := []string{"index", "DATE", "Months", "CUSTOMER", "Style", "SKU", "Size", "PCS", "RATE", "GROSS AMT"}
	rows := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		idx := rng.Intn(len(skus))
		pcs := 2 + rng.Intn(20)
		rate := 150 + rng.Intn(400)
		rows = append(rows, []string{
			fmt.Sprint(i), fmt.Sprintf("%02d-%02d-22", 5+rng.Intn(2), 1+rng.Intn(28)),
			"Jun-22", customers[rng.Intn(len(customers))], styles[idx], skus[idx],
			sizes[rng.Intn(len(sizes))], fmt.Sprint(pcs),
			fmt.Sprintf("%d.00", rate), fmt.Sprintf("%d.00", pcs*rate),
		})
	}
	return writeCSV(path, header, rows)
}

func writeMaster(path string, rng *rand.Rand) error {
	header := []string{"index", "SKU Code", "Design No.", "Category", "Size", "Color", "Stock"}
	rows := make([][]string, 0, len(skus)+1)
	for i, sku := range skus {
		rows = append(rows, []string{
			fmt.Sprint(i), sku, styles[i], categories[i%len(categories)],
			sizes[i%len(sizes)], colors[rng.Intn(len(colors))],
			fmt.Sprint(rng.Intn(500)),
		})
	}
	// a duplicate entry, so deduplication is visible in the run manifest
	first := rows[0]
	rows = append(rows, []string{
		fmt.Sprint(len(skus)), first[1], first[2], first[3], first[4],
		colors[rng.Intn(len(colors))], fmt.Sprint(rng.Intn(500)),
	})
	return writeCSV(path, header, rows)
}
