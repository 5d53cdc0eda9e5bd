package commerce

// GraphQL documents for the storefront API. Cart operations all select the
// same complete snapshot so callers can replace state wholesale.

const imageFields = `
  id
  url
  altText
  width
  height
`

const cartFields = `
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount {
      amount
      currencyCode
    }
    totalAmount {
      amount
      currencyCode
    }
    totalTaxAmount {
      amount
      currencyCode
    }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        cost {
          totalAmount {
            amount
            currencyCode
          }
        }
        merchandise {
          ... on ProductVariant {
            id
            title
            selectedOptions {
              name
              value
            }
            product {
              id
              handle
              title
              featuredImage {` + imageFields + `}
            }
          }
        }
      }
    }
  }
`

const variantFields = `
  id
  title
  availableForSale
  quantityAvailable
  price {
    amount
    currencyCode
  }
  compareAtPrice {
    amount
    currencyCode
  }
  selectedOptions {
    name
    value
  }
  image {` + imageFields + `}
`

const productFields = `
  id
  handle
  title
  description
  descriptionHtml
  availableForSale
  tags
  vendor
  productType
  priceRange {
    minVariantPrice {
      amount
      currencyCode
    }
    maxVariantPrice {
      amount
      currencyCode
    }
  }
`

// QueryProducts lists products with images and variants.
const QueryProducts = `
  query GetProducts($limit: Int!) {
    products(first: $limit) {
      edges {
        node {` + productFields + `
          images(first: 5) {
            edges {
              node {` + imageFields + `}
            }
          }
          variants(first: 10) {
            edges {
              node {` + variantFields + `}
            }
          }
        }
      }
    }
  }
`

// QueryProductByHandle fetches one product with the full variant set.
const QueryProductByHandle = `
  query GetProductByHandle($handle: String!) {
    productByHandle(handle: $handle) {` + productFields + `
      images(first: 10) {
        edges {
          node {` + imageFields + `}
        }
      }
      variants(first: 50) {
        edges {
          node {` + variantFields + `}
        }
      }
    }
  }
`

// QueryCollections lists collections without their product pages.
const QueryCollections = `
  query GetCollections($limit: Int!) {
    collections(first: $limit) {
      edges {
        node {
          id
          handle
          title
          description
          descriptionHtml
          image {` + imageFields + `}
        }
      }
    }
  }
`

// QueryCollectionByHandle fetches one collection with a page of products.
const QueryCollectionByHandle = `
  query GetCollectionByHandle($handle: String!, $limit: Int!) {
    collectionByHandle(handle: $handle) {
      id
      handle
      title
      description
      descriptionHtml
      image {` + imageFields + `}
      products(first: $limit) {
        edges {
          node {
            id
            handle
            title
            description
            availableForSale
            priceRange {
              minVariantPrice {
                amount
                currencyCode
              }
              maxVariantPrice {
                amount
                currencyCode
              }
            }
            images(first: 1) {
              edges {
                node {` + imageFields + `}
              }
            }
            variants(first: 1) {
              edges {
                node {
                  id
                  availableForSale
                }
              }
            }
          }
        }
      }
    }
  }
`

// MutationCartCreate creates a cart, optionally seeded with lines.
const MutationCartCreate = `
  mutation CreateCart($lines: [CartLineInput!]) {
    cartCreate(input: { lines: $lines }) {
      cart {` + cartFields + `}
    }
  }
`

// QueryCart fetches a cart by handle; a null cart means not found.
const QueryCart = `
  query GetCart($cartId: ID!) {
    cart(id: $cartId) {` + cartFields + `}
  }
`

// MutationCartLinesAdd appends lines to an existing cart.
const MutationCartLinesAdd = `
  mutation AddToCart($cartId: ID!, $lines: [CartLineInput!]!) {
    cartLinesAdd(cartId: $cartId, lines: $lines) {
      cart {` + cartFields + `}
    }
  }
`

// MutationCartLinesUpdate rewrites quantities on existing lines.
const MutationCartLinesUpdate = `
  mutation UpdateCart($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
    cartLinesUpdate(cartId: $cartId, lines: $lines) {
      cart {` + cartFields + `}
    }
  }
`

// MutationCartLinesRemove deletes lines by ID.
const MutationCartLinesRemove = `
  mutation RemoveFromCart($cartId: ID!, $lineIds: [ID!]!) {
    cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
      cart {` + cartFields + `}
    }
  }
`
