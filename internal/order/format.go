package order

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/talkincode/craftstore/internal/domain"
)

var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount with Indian digit grouping, e.g. 1,23,456.50.
func FormatINR(amount float64) string {
	return inPrinter.Sprintf("₹%v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

// formatCartMessage builds the admin alert for a cart order. HTML parse
// mode, so user-supplied values pass through escaping.
func formatCartMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("🛍️ <b>New Cart Order Received!</b>\n\n")
	b.WriteString("👤 <b>Customer Details:</b>\n")
	fmt.Fprintf(&b, "• Name: %s\n", htmlEscape(o.Name))
	fmt.Fprintf(&b, "• Email: %s\n", htmlEscape(o.Email))
	fmt.Fprintf(&b, "• Phone: %s\n", htmlEscape(o.Phone))
	fmt.Fprintf(&b, "• Address: %s\n", htmlEscape(o.Address))
	if o.Notes != "" {
		fmt.Fprintf(&b, "• Notes: %s\n", htmlEscape(o.Notes))
	}
	b.WriteString("\n📦 <b>Order Items:</b>\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "• %s x%d - %s\n",
			htmlEscape(item.Name), item.Quantity, FormatINR(item.Price*float64(item.Quantity)))
	}
	fmt.Fprintf(&b, "\n💰 <b>Total:</b> %s\n", FormatINR(o.Total))
	fmt.Fprintf(&b, "\n🔢 Order ID: #%d\n", o.ID)
	fmt.Fprintf(&b, "⏰ Time: %s\n", o.CreatedAt.Format("02/01/2006, 3:04:05 pm"))
	return b.String()
}

// formatCustomMessage builds the admin alert for a custom order request.
func formatCustomMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("🎨 <b>New Custom Order Received!</b>\n\n")
	b.WriteString("👤 <b>Customer Details:</b>\n")
	fmt.Fprintf(&b, "• Name: %s\n", htmlEscape(o.Name))
	fmt.Fprintf(&b, "• Email: %s\n", htmlEscape(o.Email))
	fmt.Fprintf(&b, "• Phone: %s\n", htmlEscape(o.Phone))
	b.WriteString("\n📝 <b>Order Details:</b>\n")
	b.WriteString(htmlEscape(o.Description))
	b.WriteString("\n\n")
	if len(o.Images) > 0 {
		fmt.Fprintf(&b, "🖼️ Images: %d images attached\n", len(o.Images))
	} else {
		b.WriteString("🖼️ Images: No images\n")
	}
	fmt.Fprintf(&b, "\n🔢 Order ID: #%d\n", o.ID)
	fmt.Fprintf(&b, "⏰ Time: %s\n", o.CreatedAt.Format("02/01/2006, 3:04:05 pm"))
	return b.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
