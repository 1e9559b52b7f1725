// Package ubl extrae de un documento UBL 2.1 de factura electrónica los
// campos que necesita el alta de facturas de proveedor. No valida firma ni
// CUFE: el documento ya viene validado por la DIAN, aquí solo se leen los
// totales y la identificación del emisor.
package ubl

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pagos-api/internal/application/dto"
	"github.com/jhoicas/pagos-api/internal/application/invoices"
	"github.com/jhoicas/pagos-api/internal/domain/entity"
)

// Parser adaptador del puerto de ingesta de facturas sobre documentos UBL.
type Parser struct{}

var _ invoices.FacturaParser = (*Parser)(nil)

// NewParser construye el adaptador.
func NewParser() *Parser { return &Parser{} }

func (*Parser) ParseFactura(data []byte) (*dto.CrearFacturaRequest, error) {
	return ParseFactura(data)
}

// ParseFactura lee un XML UBL (Invoice o CreditNote) y construye la petición
// de alta equivalente. Algunos proveedores aún emiten en ISO-8859-1, de ahí
// el CharsetReader.
func ParseFactura(data []byte) (*dto.CrearFacturaRequest, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("leer XML UBL: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("XML UBL sin elemento raíz")
	}

	var tipo string
	switch root.Tag {
	case "Invoice":
		tipo = entity.TipoFactura
	case "CreditNote":
		tipo = entity.TipoNotaCredito
	default:
		return nil, fmt.Errorf("documento UBL no soportado: %s", root.Tag)
	}

	numero := elementText(root, "cbc:ID")
	if numero == "" {
		return nil, fmt.Errorf("UBL sin cbc:ID")
	}

	req := &dto.CrearFacturaRequest{
		NumeroFactura:   numero,
		Tipo:            tipo,
		Fecha:           elementText(root, "cbc:IssueDate"),
		ProveedorNIT:    supplierNIT(root),
		ProveedorNombre: elementText(root, "cac:AccountingSupplierParty/cac:Party/cac:PartyTaxScheme/cbc:RegistrationName"),
	}
	if req.ProveedorNIT == "" {
		return nil, fmt.Errorf("UBL sin NIT de emisor")
	}

	total, err := monetaryAmount(root,
		"cac:LegalMonetaryTotal/cbc:TaxInclusiveAmount",
		"cac:LegalMonetaryTotal/cbc:PayableAmount",
	)
	if err != nil {
		return nil, err
	}
	req.TotalAPagar = total

	if iva, err := monetaryAmount(root, "cac:TaxTotal/cbc:TaxAmount"); err == nil {
		req.FacturaIVA = iva
	}
	if sinIVA, err := monetaryAmount(root,
		"cac:LegalMonetaryTotal/cbc:TaxExclusiveAmount",
		"cac:LegalMonetaryTotal/cbc:LineExtensionAmount",
	); err == nil {
		req.TotalSinIVA = &sinIVA
	}
	if pct, err := monetaryAmount(root, "cac:TaxTotal/cac:TaxSubtotal/cac:TaxCategory/cbc:Percent"); err == nil {
		req.FacturaIVAPorcentaje = pct
	}

	return req, nil
}

// supplierNIT devuelve el NIT del emisor; si el documento trae el dígito de
// verificación como atributo, lo anexa con guion (formato NIT-DV).
func supplierNIT(root *etree.Element) string {
	el := root.FindElement("cac:AccountingSupplierParty/cac:Party/cac:PartyTaxScheme/cbc:CompanyID")
	if el == nil {
		return ""
	}
	nit := strings.TrimSpace(el.Text())
	if nit == "" {
		return ""
	}
	if dv := el.SelectAttrValue("schemeID", ""); dv != "" && !strings.Contains(nit, "-") {
		nit = nit + "-" + dv
	}
	return nit
}

func elementText(root *etree.Element, path string) string {
	if el := root.FindElement(path); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

// monetaryAmount lee el primer path presente como decimal.
func monetaryAmount(root *etree.Element, paths ...string) (decimal.Decimal, error) {
	for _, p := range paths {
		txt := elementText(root, p)
		if txt == "" {
			continue
		}
		v, err := decimal.NewFromString(txt)
		if err != nil {
			return decimal.Zero, fmt.Errorf("monto inválido en %s: %w", p, err)
		}
		return v, nil
	}
	return decimal.Zero, fmt.Errorf("monto no presente: %s", strings.Join(paths, ", "))
}
