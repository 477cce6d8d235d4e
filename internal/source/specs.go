package source

// The three report formats this pipeline understands. Column vocabularies
// come from the upstream exports and are not configurable.

// Marketplace is the marketplace order export ("Amazon Sale Report").
func Marketplace() CleanSpec {
	return CleanSpec{
		DropColumns: []string{"Unnamed: 22", "index"},
		Rename: map[string]string{
			"Order ID":           "order_id",
			"Date":               "order_date",
			"Qty":                "quantity",
			"Amount":             "amount",
			"SKU":                "sku",
			"ship-city":          "ship_city",
			"ship-state":         "ship_state",
			"ship-postal-code":   "ship_postal_code",
			"ship-country":       "ship_country",
			"Sales Channel":      "sales_channel",
			"Style":              "product_style",
			"Category":           "product_category",
			"Size":               "product_size",
			"ASIN":               "product_asin",
			"promotion-ids":      "promotion_ids",
			"B2B":                "is_b2b",
			"fulfilled-by":       "fulfillment_by",
			"Courier Status":     "courier_status",
			"currency":           "currency",
			"Status":             "order_status",
			"Fulfilment":         "fulfillment_type",
			"ship-service-level": "ship_service_level",
		},
		Coerce: map[string]Coercion{
			"order_date":       {Kind: CoerceDate},
			"quantity":         {Kind: CoerceInt},
			"amount":           {Kind: CoerceDecimal},
			"ship_postal_code": {Kind: CoerceString},
		},
	}
}

// Wholesale is the international wholesale ledger. Its dates are fixed
// MM-DD-YY.
func Wholesale() CleanSpec {
	return CleanSpec{
		DropColumns: []string{"index"},
		Rename: map[string]string{
			"DATE":      "order_date",
			"Months":    "order_month",
			"CUSTOMER":  "customer_name",
			"Style":     "product_style",
			"SKU":       "sku",
			"Size":      "product_size",
			"PCS":       "quantity",
			"RATE":      "unit_price",
			"GROSS AMT": "total_amount",
		},
		Coerce: map[string]Coercion{
			"order_date":   {Kind: CoerceDate, Layout: "01-02-06"},
			"quantity":     {Kind: CoerceInt},
			"unit_price":   {Kind: CoerceDecimal},
			"total_amount": {Kind: CoerceDecimal},
		},
	}
}

// ProductMaster is the product master/stock list ("Sale Report").
func ProductMaster() CleanSpec {
	return CleanSpec{
		DropColumns: []string{"index"},
		Rename: map[string]string{
			"SKU Code":   "sku",
			"Design No.": "design_no",
			"Stock":      "current_stock",
			"Category":   "product_category",
			"Size":       "product_size",
			"Color":      "product_color",
		},
		Coerce: map[string]Coercion{
			"current_stock": {Kind: CoerceInt},
		},
	}
}
