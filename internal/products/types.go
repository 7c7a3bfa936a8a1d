package products

import "time"

// NutritionalValue is one row of a product's nutrition table.
type NutritionalValue struct {
	Nutrient string `json:"nutrient" dynamodbav:"nutrient" validate:"notblank"`
	PerDose  string `json:"perDose" dynamodbav:"perDose"`
	VNR      string `json:"vnr" dynamodbav:"vnr"` // % of reference intake
}

// Product represents the item stored in the products table.
type Product struct {
	ID          string  `json:"id" dynamodbav:"id"` // PK
	Name        string  `json:"name" dynamodbav:"name"`
	Category    string  `json:"category" dynamodbav:"category"`
	Price       float64 `json:"price" dynamodbav:"price"`
	Image       string  `json:"image" dynamodbav:"image"`
	Description string  `json:"description" dynamodbav:"description"`
	InStock     bool    `json:"inStock" dynamodbav:"inStock"`
	Featured    bool    `json:"featured" dynamodbav:"featured"`

	// optional catalogue details shown on the product page
	Subtitle        string             `json:"subtitle,omitempty" dynamodbav:"subtitle,omitempty"`
	Brand           string             `json:"brand,omitempty" dynamodbav:"brand,omitempty"`
	NetWeight       string             `json:"netWeight,omitempty" dynamodbav:"netWeight,omitempty"`
	Format          string             `json:"format,omitempty" dynamodbav:"format,omitempty"`
	Flavor          string             `json:"flavor,omitempty" dynamodbav:"flavor,omitempty"`
	GlutenFree      bool               `json:"glutenFree" dynamodbav:"glutenFree"`
	LactoseFree     bool               `json:"lactoseFree" dynamodbav:"lactoseFree"`
	FullDescription string             `json:"fullDescription,omitempty" dynamodbav:"fullDescription,omitempty"`
	Benefits        []string           `json:"benefits,omitempty" dynamodbav:"benefits,omitempty"`
	Ingredients     []string           `json:"ingredients,omitempty" dynamodbav:"ingredients,omitempty"`
	FullIngredients string             `json:"fullIngredients,omitempty" dynamodbav:"fullIngredients,omitempty"`
	NutritionalInfo []NutritionalValue `json:"nutritionalInfo,omitempty" dynamodbav:"nutritionalInfo,omitempty"`
	Usage           string             `json:"usage,omitempty" dynamodbav:"usage,omitempty"`
	Warnings        string             `json:"warnings,omitempty" dynamodbav:"warnings,omitempty"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewProduct is the payload for POST /products.
type NewProduct struct {
	Name        string   `json:"name" validate:"notblank"`
	Category    string   `json:"category" validate:"notblank"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Image       string   `json:"image" validate:"required"`
	Description string   `json:"description" validate:"required"`
	InStock     *bool    `json:"inStock"` // defaults to true
	Featured    bool     `json:"featured"`

	Subtitle        string             `json:"subtitle"`
	Brand           string             `json:"brand"`
	NetWeight       string             `json:"netWeight"`
	Format          string             `json:"format"`
	Flavor          string             `json:"flavor"`
	GlutenFree      bool               `json:"glutenFree"`
	LactoseFree     bool               `json:"lactoseFree"`
	FullDescription string             `json:"fullDescription"`
	Benefits        []string           `json:"benefits"`
	Ingredients     []string           `json:"ingredients"`
	FullIngredients string             `json:"fullIngredients"`
	NutritionalInfo []NutritionalValue `json:"nutritionalInfo" validate:"omitempty,dive"`
	Usage           string             `json:"usage"`
	Warnings        string             `json:"warnings"`
}

// Patch is the payload for PUT /products/{id}. Nil fields are left untouched.
type Patch struct {
	Name        *string  `json:"name" validate:"omitempty,notblank"`
	Category    *string  `json:"category" validate:"omitempty,notblank"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	InStock     *bool    `json:"inStock"`
	Featured    *bool    `json:"featured"`

	Subtitle        *string            `json:"subtitle"`
	Brand           *string            `json:"brand"`
	NetWeight       *string            `json:"netWeight"`
	Format          *string            `json:"format"`
	Flavor          *string            `json:"flavor"`
	GlutenFree      *bool              `json:"glutenFree"`
	LactoseFree     *bool              `json:"lactoseFree"`
	FullDescription *string            `json:"fullDescription"`
	Benefits        []string           `json:"benefits"`
	Ingredients     []string           `json:"ingredients"`
	FullIngredients *string            `json:"fullIngredients"`
	NutritionalInfo []NutritionalValue `json:"nutritionalInfo" validate:"omitempty,dive"`
	Usage           *string            `json:"usage"`
	Warnings        *string            `json:"warnings"`
}

// Apply merges the supplied fields into p.
func (pt Patch) Apply(p *Product) {
	setString(&p.Name, pt.Name)
	setString(&p.Category, pt.Category)
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	setString(&p.Image, pt.Image)
	setString(&p.Description, pt.Description)
	setBool(&p.InStock, pt.InStock)
	setBool(&p.Featured, pt.Featured)

	setString(&p.Subtitle, pt.Subtitle)
	setString(&p.Brand, pt.Brand)
	setString(&p.NetWeight, pt.NetWeight)
	setString(&p.Format, pt.Format)
	setString(&p.Flavor, pt.Flavor)
	setBool(&p.GlutenFree, pt.GlutenFree)
	setBool(&p.LactoseFree, pt.LactoseFree)
	setString(&p.FullDescription, pt.FullDescription)
	if pt.Benefits != nil {
		p.Benefits = pt.Benefits
	}
	if pt.Ingredients != nil {
		p.Ingredients = pt.Ingredients
	}
	setString(&p.FullIngredients, pt.FullIngredients)
	if pt.NutritionalInfo != nil {
		p.NutritionalInfo = pt.NutritionalInfo
	}
	setString(&p.Usage, pt.Usage)
	setString(&p.Warnings, pt.Warnings)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
