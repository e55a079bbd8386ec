package shopify

const imageFields = `url altText width height`

const productFields = `
  id
  handle
  title
  description
  descriptionHtml
  productType
  vendor
  tags
  availableForSale
  updatedAt
  featuredImage { ` + imageFields + ` }
  images(first: 10) { nodes { ` + imageFields + ` } }
  priceRange {
    minVariantPrice { amount currencyCode }
    maxVariantPrice { amount currencyCode }
  }
  variants(first: 25) {
    nodes {
      id
      title
      sku
      availableForSale
      price { amount currencyCode }
      compareAtPrice { amount currencyCode }
      selectedOptions { name value }
    }
  }
  seo { title description }
`

const productsQuery = `
query Products($first: Int!, $after: String) {
  products(first: $first, after: $after, sortKey: TITLE) {
    nodes {` + productFields + `}
    pageInfo { hasNextPage endCursor }
  }
}`

const productQuery = `
query Product($handle: String!) {
  product(handle: $handle) {` + productFields + `}
}`

const collectionsQuery = `
query Collections($first: Int!) {
  collections(first: $first, sortKey: TITLE) {
    nodes { id handle title description updatedAt image { ` + imageFields + ` } }
  }
}`

const collectionQuery = `
query Collection($handle: String!, $first: Int!) {
  collection(handle: $handle) {
    id handle title description updatedAt
    image { ` + imageFields + ` }
    products(first: $first) { nodes {` + productFields + `} }
  }
}`

const cartFields = `
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount { amount currencyCode }
    totalAmount { amount currencyCode }
    totalTaxAmount { amount currencyCode }
  }
  lines(first: 100) {
    nodes {
      id
      quantity
      cost { totalAmount { amount currencyCode } }
      merchandise {
        ... on ProductVariant {
          id
          title
          price { amount currencyCode }
          image { ` + imageFields + ` }
          product { handle title }
        }
      }
    }
  }
`

const cartQuery = `
query Cart($cartId: ID!) {
  cart(id: $cartId) {` + cartFields + `}
}`

const cartCreateMutation = `
mutation CartCreate($lines: [CartLineInput!]) {
  cartCreate(input: { lines: $lines }) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`

const cartLinesAddMutation = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`

const cartLinesUpdateMutation = `
mutation CartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`

const cartLinesRemoveMutation = `
mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`
