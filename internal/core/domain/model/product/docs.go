// Package product models catalog products and their stock on hand.
package product
