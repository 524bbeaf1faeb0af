package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra"

	"github.com/olekukonko/tablewriter"
)

const pageSize = 100

func stockReport(ctx context.Context, c infra.StoreClientInterface, w io.Writer, low int) error {
	table := tablewriter.NewWriter(w)
	table.Header("Slug", "Name", "Stock", "Option", "Price", "Sale price", "")

	for page := 1; ; page++ {
		res, err := c.ListProducts(ctx, page, pageSize)
		if err != nil {
			return err
		}
		for _, p := range res.Items {
			rows := [][]string{{p.Slug, p.Name, strconv.Itoa(p.Stock), "", money(p.Price), money(p.SalePrice), lowMark(p.Stock, low)}}
			for _, l := range leafStock(p.Variants, "") {
				rows = append(rows, []string{"", "", strconv.Itoa(l.stock), l.path, "", "", lowMark(l.stock, low)})
			}
			for _, row := range rows {
				if err := table.Append(row); err != nil {
					return err
				}
			}
		}
		if int64(page*pageSize) >= res.Total || len(res.Items) == 0 {
			break
		}
	}
	return table.Render()
}

type leaf struct {
	path  string
	stock int
}

// leafStock lists the stock of every option that has no sub-variants, with
// its full path through the variant tree.
func leafStock(variants []domain.Variant, prefix string) []leaf {
	var out []leaf
	for _, v := range variants {
		for _, o := range v.Options {
			path := v.Name + "=" + o.Label
			if prefix != "" {
				path = prefix + " / " + path
			}
			if len(o.SubVariants) == 0 {
				out = append(out, leaf{path: path, stock: o.Stock})
				continue
			}
			out = append(out, leafStock(o.SubVariants, path)...)
		}
	}
	return out
}

func salesReport(ctx context.Context, c infra.StoreClientInterface, w io.Writer, now time.Time) error {
	sales, err := c.ActiveSales(ctx)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Discount", "Applies to", "Expires", "Remaining")
	for _, s := range sales {
		row := []string{
			s.Name,
			fmt.Sprintf("%d%%", s.DiscountPercent),
			scope(s),
			s.ExpiresAt.Format(time.RFC3339),
			s.ExpiresAt.Sub(now).Round(time.Minute).String(),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func scope(s domain.Sale) string {
	if len(s.Categories) == 0 && len(s.Products) == 0 {
		return "everything"
	}
	var parts []string
	if len(s.Categories) > 0 {
		parts = append(parts, "categories: "+strings.Join(s.Categories, ", "))
	}
	if len(s.Products) > 0 {
		parts = append(parts, "products: "+strings.Join(s.Products, ", "))
	}
	return strings.Join(parts, "; ")
}

func ordersReport(ctx context.Context, c infra.StoreClientInterface, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Order", "Status", "Items", "Total", "Paid", "Placed")

	byStatus := map[domain.OrderStatus]int{}
	var revenue int64
	for page := 1; ; page++ {
		res, err := c.ListOrders(ctx, page, pageSize)
		if err != nil {
			return err
		}
		for _, o := range res.Items {
			o.Normalize()
			byStatus[o.Status]++
			if o.IsPaid && !o.Cancelled() {
				revenue += o.TotalPrice
			}
			row := []string{o.OrderID, string(o.Status), strconv.Itoa(len(o.Items)), money(o.TotalPrice), yesNo(o.IsPaid), o.CreatedAt.Format("2006-01-02 15:04")}
			if err := table.Append(row); err != nil {
				return err
			}
		}
		if int64(page*pageSize) >= res.Total || len(res.Items) == 0 {
			break
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\npaid revenue: %s\n", money(revenue))
	for _, st := range []domain.OrderStatus{domain.StatusOrdered, domain.StatusConfirmed, domain.StatusShipped, domain.StatusDelivered, domain.StatusCancelled} {
		fmt.Fprintf(w, "%-10s %d\n", st, byStatus[st])
	}
	return nil
}

func money(v int64) string { return strconv.FormatInt(v, 10) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func lowMark(stock, low int) string {
	if stock <= low {
		return "LOW"
	}
	return ""
}
