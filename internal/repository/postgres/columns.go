package postgres

const productColumns = `id, name, emoji, description, features, price, reward_rate, category, tier, stock,
       is_active, image_url, color, bg_color, border_color, created_at, updated_at`

const orderColumns = `id, user_id, user_wallet_address, user_public_key, product_id, product_name,
       product_price, product_emoji, reward_rate, transaction_signature, transaction_amount,
       transaction_status, order_status, created_at, updated_at`

const userColumns = `id, wallet_address, public_key, username, avatar, notifications, newsletter,
       total_purchases, total_spent, first_purchase, last_purchase, coins, last_claimed_at,
       is_active, created_at, updated_at`

const claimColumns = `id, user_id, wallet_address, amount, previous_claimed_at, claimed_at,
       order_count, balance_after`
