package pricing

// LowPieceThreshold: un artículo con menos unidades sueltas que esto (y algún paquete) se repone.
const LowPieceThreshold = 5

// PacksToOpen cuántos paquetes abrir: la mitad de los disponibles (redondeo hacia abajo),
// mínimo uno. Con 0 paquetes no abre nada.
func PacksToOpen(packsInStock int) int {
	if packsInStock <= 0 {
		return 0
	}
	return max(1, packsInStock/2)
}

// NeedsReplenish indica si el artículo entra en la pasada de reposición automática.
func NeedsReplenish(packsInStock, piecesInStock int) bool {
	return piecesInStock < LowPieceThreshold && packsInStock > 0
}
