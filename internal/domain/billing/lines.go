package billing

import "github.com/jhoicas/facturapp-api/internal/domain/entity"

// LineChanges operaciones necesarias para llevar las líneas persistidas a las enviadas.
type LineChanges struct {
	Delete []string
	Update []entity.InvoiceLine
	Create []entity.InvoiceLine
}

// Empty indica que no hay nada que escribir.
func (c LineChanges) Empty() bool {
	return len(c.Delete) == 0 && len(c.Update) == 0 && len(c.Create) == 0
}

// DiffLines compara por ID exacto. Una línea enviada sin ID (o con un ID
// desconocido) es nueva; una existente que no llega se elimina; una presente
// en ambas solo se actualiza si cambió descripción, cantidad o precio unitario.
func DiffLines(existing, submitted []entity.InvoiceLine) LineChanges {
	byID := make(map[string]entity.InvoiceLine, len(existing))
	for _, l := range existing {
		byID[l.ID] = l
	}

	var out LineChanges
	kept := make(map[string]bool, len(submitted))
	for _, l := range submitted {
		old, ok := byID[l.ID]
		if l.ID == "" || !ok || kept[l.ID] {
			l.ID = ""
			out.Create = append(out.Create, l)
			continue
		}
		kept[l.ID] = true
		if lineChanged(old, l) {
			out.Update = append(out.Update, l)
		}
	}
	for _, l := range existing {
		if !kept[l.ID] {
			out.Delete = append(out.Delete, l.ID)
		}
	}
	return out
}

func lineChanged(a, b entity.InvoiceLine) bool {
	return a.Description != b.Description ||
		a.Quantity != b.Quantity ||
		!a.UnitPrice.Equal(b.UnitPrice)
}
