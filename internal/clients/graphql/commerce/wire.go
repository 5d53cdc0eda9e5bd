package commerce

// Wire shapes mirror the storefront GraphQL schema, edges and nodes
// included. Domain adapters unwrap them into the internal model.

// MoneyV2 is the amount/currency pair as the platform returns it.
type MoneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Image is a catalog or merchandise image node.
type Image struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// SelectedOption is a variant option pair (e.g. Size / M).
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Edges is the generic connection wrapper.
type Edges[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

// Nodes unwraps a connection into its node slice.
func (e Edges[T]) Nodes() []T {
	nodes := make([]T, 0, len(e.Edges))
	for _, edge := range e.Edges {
		nodes = append(nodes, edge.Node)
	}
	return nodes
}

// Variant is a purchasable product configuration.
type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable int              `json:"quantityAvailable"`
	Price             MoneyV2          `json:"price"`
	CompareAtPrice    *MoneyV2         `json:"compareAtPrice"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
	Image             *Image           `json:"image"`
}

// PriceRange spans the cheapest and most expensive variant.
type PriceRange struct {
	MinVariantPrice MoneyV2 `json:"minVariantPrice"`
	MaxVariantPrice MoneyV2 `json:"maxVariantPrice"`
}

// Product is the catalog product node.
type Product struct {
	ID               string         `json:"id"`
	Handle           string         `json:"handle"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	DescriptionHTML  string         `json:"descriptionHtml"`
	AvailableForSale bool           `json:"availableForSale"`
	Tags             []string       `json:"tags"`
	Vendor           string         `json:"vendor"`
	ProductType      string         `json:"productType"`
	PriceRange       PriceRange     `json:"priceRange"`
	Images           Edges[Image]   `json:"images"`
	Variants         Edges[Variant] `json:"variants"`
}

// Collection is the catalog collection node with an optional product page.
type Collection struct {
	ID              string         `json:"id"`
	Handle          string         `json:"handle"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DescriptionHTML string         `json:"descriptionHtml"`
	Image           *Image         `json:"image"`
	Products        Edges[Product] `json:"products"`
}

// CartProduct is the product reference carried on a cart line's merchandise.
type CartProduct struct {
	ID            string `json:"id"`
	Handle        string `json:"handle"`
	Title         string `json:"title"`
	FeaturedImage *Image `json:"featuredImage"`
}

// Merchandise is the ProductVariant fragment on a cart line.
type Merchandise struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Product         CartProduct      `json:"product"`
}

// LineCost carries the per-line total.
type LineCost struct {
	TotalAmount MoneyV2 `json:"totalAmount"`
}

// CartLine is a single cart entry.
type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Cost        LineCost    `json:"cost"`
	Merchandise Merchandise `json:"merchandise"`
}

// CartCost is the cart-level cost breakdown.
type CartCost struct {
	SubtotalAmount MoneyV2  `json:"subtotalAmount"`
	TotalAmount    MoneyV2  `json:"totalAmount"`
	TotalTaxAmount *MoneyV2 `json:"totalTaxAmount"`
}

// Cart is the complete cart snapshot every cart operation returns.
type Cart struct {
	ID            string          `json:"id"`
	CheckoutURL   string          `json:"checkoutUrl"`
	TotalQuantity int             `json:"totalQuantity"`
	Cost          CartCost        `json:"cost"`
	Lines         Edges[CartLine] `json:"lines"`
}

// LineInput adds merchandise to a cart.
type LineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// LineUpdateInput rewrites an existing line's quantity.
type LineUpdateInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}
