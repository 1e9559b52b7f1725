package ubl_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pagos-api/internal/domain/entity"
	"github.com/jhoicas/pagos-api/internal/infrastructure/ubl"
)

const facturaUBL = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
         xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
         xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>FE-1001</cbc:ID>
  <cbc:IssueDate>2025-03-10</cbc:IssueDate>
  <cac:AccountingSupplierParty>
    <cac:Party>
      <cac:PartyTaxScheme>
        <cbc:RegistrationName>Distribuidora La Esperanza SAS</cbc:RegistrationName>
        <cbc:CompanyID schemeID="8">900123456</cbc:CompanyID>
      </cac:PartyTaxScheme>
    </cac:Party>
  </cac:AccountingSupplierParty>
  <cac:TaxTotal>
    <cbc:TaxAmount currencyID="COP">19000.00</cbc:TaxAmount>
    <cac:TaxSubtotal>
      <cac:TaxCategory>
        <cbc:Percent>19.00</cbc:Percent>
      </cac:TaxCategory>
    </cac:TaxSubtotal>
  </cac:TaxTotal>
  <cac:LegalMonetaryTotal>
    <cbc:TaxExclusiveAmount currencyID="COP">100000.00</cbc:TaxExclusiveAmount>
    <cbc:TaxInclusiveAmount currencyID="COP">119000.00</cbc:TaxInclusiveAmount>
    <cbc:PayableAmount currencyID="COP">119000.00</cbc:PayableAmount>
  </cac:LegalMonetaryTotal>
</Invoice>`

func TestParseFactura_InvoiceCompleta(t *testing.T) {
	req, err := ubl.ParseFactura([]byte(facturaUBL))
	require.NoError(t, err)

	assert.Equal(t, "FE-1001", req.NumeroFactura)
	assert.Equal(t, entity.TipoFactura, req.Tipo)
	assert.Equal(t, "2025-03-10", req.Fecha)
	assert.Equal(t, "900123456-8", req.ProveedorNIT, "NIT con DV anexado desde schemeID")
	assert.Equal(t, "Distribuidora La Esperanza SAS", req.ProveedorNombre)
	assert.True(t, decimal.NewFromInt(119000).Equal(req.TotalAPagar))
	assert.True(t, decimal.NewFromInt(19000).Equal(req.FacturaIVA))
	assert.True(t, decimal.NewFromInt(19).Equal(req.FacturaIVAPorcentaje))
	require.NotNil(t, req.TotalSinIVA)
	assert.True(t, decimal.NewFromInt(100000).Equal(*req.TotalSinIVA))
}

func TestParseFactura_CreditNote(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<CreditNote xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
            xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>NC-55</cbc:ID>
  <cbc:IssueDate>2025-03-12</cbc:IssueDate>
  <cac:AccountingSupplierParty>
    <cac:Party>
      <cac:PartyTaxScheme>
        <cbc:RegistrationName>Distribuidora La Esperanza SAS</cbc:RegistrationName>
        <cbc:CompanyID>900123456-8</cbc:CompanyID>
      </cac:PartyTaxScheme>
    </cac:Party>
  </cac:AccountingSupplierParty>
  <cac:LegalMonetaryTotal>
    <cbc:PayableAmount currencyID="COP">11900</cbc:PayableAmount>
  </cac:LegalMonetaryTotal>
</CreditNote>`
	req, err := ubl.ParseFactura([]byte(xml))
	require.NoError(t, err)

	assert.Equal(t, entity.TipoNotaCredito, req.Tipo)
	assert.Equal(t, "NC-55", req.NumeroFactura)
	assert.Equal(t, "900123456-8", req.ProveedorNIT, "NIT con guion no se duplica")
	assert.True(t, decimal.NewFromInt(11900).Equal(req.TotalAPagar))
}

// Algunos proveedores aún emiten en ISO-8859-1: los acentos del nombre deben
// llegar bien decodificados.
func TestParseFactura_ISO88591(t *testing.T) {
	xml := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<Invoice xmlns:cac=\"urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2\"" +
		" xmlns:cbc=\"urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2\">\n" +
		"  <cbc:ID>FE-2002</cbc:ID>\n" +
		"  <cac:AccountingSupplierParty><cac:Party><cac:PartyTaxScheme>\n" +
		"    <cbc:RegistrationName>Almac\xe9n El Caf\xe9</cbc:RegistrationName>\n" +
		"    <cbc:CompanyID>830012345</cbc:CompanyID>\n" +
		"  </cac:PartyTaxScheme></cac:Party></cac:AccountingSupplierParty>\n" +
		"  <cac:LegalMonetaryTotal><cbc:PayableAmount>50000</cbc:PayableAmount></cac:LegalMonetaryTotal>\n" +
		"</Invoice>"
	req, err := ubl.ParseFactura([]byte(xml))
	require.NoError(t, err)

	assert.Equal(t, "Almacén El Café", req.ProveedorNombre)
	assert.Equal(t, "830012345", req.ProveedorNIT)
}

func TestParseFactura_DocumentosInvalidos(t *testing.T) {
	_, err := ubl.ParseFactura([]byte("esto no es XML"))
	assert.Error(t, err)

	_, err = ubl.ParseFactura([]byte(`<AttachedDocument><cbc:ID>X</cbc:ID></AttachedDocument>`))
	assert.Error(t, err, "raíz distinta de Invoice/CreditNote se rechaza")

	_, err = ubl.ParseFactura([]byte(`<Invoice><cbc:IssueDate>2025-01-01</cbc:IssueDate></Invoice>`))
	assert.Error(t, err, "sin cbc:ID no hay número de factura")
}
