package sanity

import "fmt"

// SearchLimit caps each per-type search query.
const SearchLimit = 10

const (
	cocktailProjection = `{
  _id, _createdAt, _updatedAt, name, "slug": slug.current, description, category,
  "imageUrl": image.asset->url, glassware, garnish, prepMinutes,
  ingredients[]{ name, amount }, method
}`
	equipmentProjection = `{
  _id, _createdAt, _updatedAt, name, "slug": slug.current, description, category,
  "imageUrl": image.asset->url, body
}`
	ingredientProjection = equipmentProjection
	guideProjection      = `{
  _id, _updatedAt, title, "slug": slug.current, excerpt, introduction, category,
  "imageUrl": mainImage.asset->url, "author": author->name, body, publishedAt
}`
)

// listingQuery returns every document of a type, newest first, optionally
// filtered by exact category.
func listingQuery(docType, orderField, projection string) string {
	return fmt.Sprintf(
		`*[_type == %q && defined(slug.current) && ($category == "" || category == $category)] | order(%s desc) %s`,
		docType, orderField, projection,
	)
}

func detailQuery(docType, projection string) string {
	return fmt.Sprintf(`*[_type == %q && slug.current == $slug][0] %s`, docType, projection)
}

// searchQuery matches $q against fields server-side and keeps the newest
// SearchLimit hits. Documents without a slug have no URL and are left out.
func searchQuery(docType, orderField, projection string, fields ...string) string {
	cond := ""
	for i, f := range fields {
		if i > 0 {
			cond += " || "
		}
		cond += f + " match $q"
	}
	return fmt.Sprintf(`*[_type == %q && defined(slug.current) && (%s)] | order(%s desc) [0...%d] %s`,
		docType, cond, orderField, SearchLimit, projection)
}

var (
	cocktailListQuery   = listingQuery("cocktail", "_createdAt", cocktailProjection)
	equipmentListQuery  = listingQuery("equipment", "_createdAt", equipmentProjection)
	ingredientListQuery = listingQuery("ingredient", "_createdAt", ingredientProjection)
	guideListQuery      = listingQuery("guide", "publishedAt", guideProjection)

	cocktailDetailQuery   = detailQuery("cocktail", cocktailProjection)
	equipmentDetailQuery  = detailQuery("equipment", equipmentProjection)
	ingredientDetailQuery = detailQuery("ingredient", ingredientProjection)
	guideDetailQuery      = detailQuery("guide", guideProjection)

	cocktailSearchQuery   = searchQuery("cocktail", "_createdAt", cocktailProjection, "name", "description", "category")
	equipmentSearchQuery  = searchQuery("equipment", "_createdAt", equipmentProjection, "name", "description", "category")
	ingredientSearchQuery = searchQuery("ingredient", "_createdAt", ingredientProjection, "name", "description", "category")
	guideSearchQuery      = searchQuery("guide", "publishedAt", guideProjection, "title", "excerpt", "introduction", "category")
)
