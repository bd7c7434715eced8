// Package catalog holds the immutable reference data the generator filters
// against: the product table, insurer names, addon/discount codes, KYC
// document formats, and the canned proposal-question defaults. A Catalog is
// built once and injected — never ambient — so tests can swap in synthetic
// tables.
package catalog

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/policyforge/casegen/internal/model"
)

// ErrUnknownProductCode is returned by ResolveProduct for codes outside the
// product table. It is fatal for the scenario that carries the code, not for
// the enclosing batch.
var ErrUnknownProductCode = eris.New("unknown product code")

// Product is one row of the product table.
type Product struct {
	Code        string            `yaml:"code"`
	VehicleType model.VehicleType `yaml:"vehicle_type"`
	InsurerCode string            `yaml:"insurer_code"`
}

// ResolvedProduct is the lookup result for a product code.
type ResolvedProduct struct {
	VehicleType model.VehicleType
	InsurerCode string
	InsurerName string
}

// Catalog is the full injected reference set.
type Catalog struct {
	products     []Product
	byCode       map[string]*Product
	insurerNames map[string]string
	addons       []string
	discounts    []string
	kycFormats   []model.KYCOption
	productTypes []string
	defaults     model.ProposalQuestions
}

// New indexes the given reference tables into a Catalog.
func New(products []Product, insurerNames map[string]string, addons, discounts []string, kyc []model.KYCOption, productTypes []string, defaults model.ProposalQuestions) *Catalog {
	c := &Catalog{
		products:     products,
		byCode:       make(map[string]*Product, len(products)),
		insurerNames: insurerNames,
		addons:       addons,
		discounts:    discounts,
		kycFormats:   kyc,
		productTypes: productTypes,
		defaults:     defaults,
	}
	for i := range c.products {
		c.byCode[c.products[i].Code] = &c.products[i]
	}
	return c
}

// ResolveProduct maps a product code to its vehicle type and insurer.
func (c *Catalog) ResolveProduct(code string) (ResolvedProduct, error) {
	p, ok := c.byCode[strings.TrimSpace(code)]
	if !ok {
		return ResolvedProduct{}, eris.Wrapf(ErrUnknownProductCode, "catalog: %q", code)
	}
	name, ok := c.insurerNames[p.InsurerCode]
	if !ok {
		name = "Unknown Insurer"
	}
	return ResolvedProduct{
		VehicleType: p.VehicleType,
		InsurerCode: p.InsurerCode,
		InsurerName: name,
	}, nil
}

// InsurerNames returns every insurer display name, deduplicated, in table
// order.
func (c *Catalog) InsurerNames() []string {
	seen := make(map[string]bool, len(c.products))
	var names []string
	for _, p := range c.products {
		name := c.insurerNames[p.InsurerCode]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Addons returns the known addon codes.
func (c *Catalog) Addons() []string { return c.addons }

// HasAddon reports whether code is a known addon.
func (c *Catalog) HasAddon(code string) bool {
	for _, a := range c.addons {
		if a == code {
			return true
		}
	}
	return false
}

// Discounts returns the known discount codes.
func (c *Catalog) Discounts() []string { return c.discounts }

// HasDiscount reports whether code is a known discount.
func (c *Catalog) HasDiscount(code string) bool {
	for _, d := range c.discounts {
		if d == code {
			return true
		}
	}
	return false
}

// KYCFormats returns the supported identity-document bundles.
func (c *Catalog) KYCFormats() []model.KYCOption { return c.kycFormats }

// KYCByName returns the bundle whose format name matches case-insensitively,
// or nil.
func (c *Catalog) KYCByName(name string) model.KYCOption {
	for _, opt := range c.kycFormats {
		for key := range opt {
			if strings.EqualFold(key, name) {
				return opt
			}
		}
	}
	return nil
}

// ProductTypes returns the supported product type identifiers.
func (c *Catalog) ProductTypes() []string { return c.productTypes }

// DefaultProposalQuestions returns a copy of the canned proposal defaults.
func (c *Catalog) DefaultProposalQuestions() model.ProposalQuestions {
	return c.defaults.Clone()
}

// fileSchema is the YAML override layout for LoadFile.
type fileSchema struct {
	Products     []Product         `yaml:"products"`
	InsurerNames map[string]string `yaml:"insurer_names"`
	Addons       []string          `yaml:"addons"`
	Discounts    []string          `yaml:"discounts"`
	ProductTypes []string          `yaml:"product_types"`
}

// LoadFile reads a catalog override file. Sections left empty in the file
// keep the built-in defaults; KYC formats and proposal defaults are not
// overridable (they encode the fixed test persona).
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}
	var f fileSchema
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}

	def := Default()
	if len(f.Products) == 0 {
		f.Products = def.products
	}
	if len(f.InsurerNames) == 0 {
		f.InsurerNames = def.insurerNames
	}
	if len(f.Addons) == 0 {
		f.Addons = def.addons
	}
	if len(f.Discounts) == 0 {
		f.Discounts = def.discounts
	}
	if len(f.ProductTypes) == 0 {
		f.ProductTypes = def.productTypes
	}
	return New(f.Products, f.InsurerNames, f.Addons, f.Discounts, def.kycFormats, f.ProductTypes, def.defaults), nil
}
